package mapper

import "folharh/internal/storage"

func employeeToRow(rec storage.Record) storage.Row {
	return storage.Row{
		"id":                     text(rec["id"]),
		"first_name":             text(rec["firstName"]),
		"last_name":              text(rec["lastName"]),
		"identity_card":          text(rec["identityCard"]),
		"nif":                    text(rec["nif"]),
		"social_security_number": text(rec["socialSecurityNumber"]),
		"birth_date":             text(rec["birthDate"]),
		"hire_date":              text(rec["hireDate"]),
		"position":               text(rec["position"]),
		"department":             text(rec["department"]),
		"branch_id":              text(rec["branchId"]),
		"base_salary":            number(rec["baseSalary"]),
		"food_allowance":         number(rec["foodAllowance"]),
		"transport_allowance":    number(rec["transportAllowance"]),
		"family_allowance":       number(rec["familyAllowance"]),
		"dependents":             number(rec["dependents"]),
		"bank_name":              text(rec["bankName"]),
		"bank_account":           text(rec["bankAccount"]),
		"phone":                  text(rec["phone"]),
		"email":                  text(rec["email"]),
		"is_active":              boolCol(rec["isActive"], true),
		"address":                jsonCol(rec["address"]),
	}
}

func employeeFromRow(row storage.Row) storage.Record {
	return storage.Record{
		"id":                   text(row["id"]),
		"firstName":            text(row["first_name"]),
		"lastName":             text(row["last_name"]),
		"identityCard":         text(row["identity_card"]),
		"nif":                  text(row["nif"]),
		"socialSecurityNumber": text(row["social_security_number"]),
		"birthDate":            text(row["birth_date"]),
		"hireDate":             text(row["hire_date"]),
		"position":             text(row["position"]),
		"department":           text(row["department"]),
		"branchId":             text(row["branch_id"]),
		"baseSalary":           number(row["base_salary"]),
		"foodAllowance":        number(row["food_allowance"]),
		"transportAllowance":   number(row["transport_allowance"]),
		"familyAllowance":      number(row["family_allowance"]),
		"dependents":           number(row["dependents"]),
		"bankName":             text(row["bank_name"]),
		"bankAccount":          text(row["bank_account"]),
		"phone":                text(row["phone"]),
		"email":                text(row["email"]),
		"isActive":             boolField(row["is_active"], true),
		"address":              jsonField(row["address"]),
	}
}
