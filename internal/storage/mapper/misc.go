package mapper

import "folharh/internal/storage"

func deductionToRow(rec storage.Record) storage.Row {
	return storage.Row{
		"id":           text(rec["id"]),
		"employee_id":  text(rec["employeeId"]),
		"kind":         text(rec["kind"]),
		"description":  text(rec["description"]),
		"amount":       number(rec["amount"]),
		"percentage":   number(rec["percentage"]),
		"start_date":   text(rec["startDate"]),
		"end_date":     text(rec["endDate"]),
		"is_recurring": boolCol(rec["isRecurring"], false),
		"is_active":    boolCol(rec["isActive"], true),
	}
}

func deductionFromRow(row storage.Row) storage.Record {
	return storage.Record{
		"id":          text(row["id"]),
		"employeeId":  text(row["employee_id"]),
		"kind":        text(row["kind"]),
		"description": text(row["description"]),
		"amount":      number(row["amount"]),
		"percentage":  number(row["percentage"]),
		"startDate":   text(row["start_date"]),
		"endDate":     text(row["end_date"]),
		"isRecurring": boolField(row["is_recurring"], false),
		"isActive":    boolField(row["is_active"], true),
	}
}

func absenceToRow(rec storage.Record) storage.Row {
	return storage.Row{
		"id":             text(rec["id"]),
		"employee_id":    text(rec["employeeId"]),
		"kind":           text(rec["kind"]),
		"start_date":     text(rec["startDate"]),
		"end_date":       text(rec["endDate"]),
		"days":           number(rec["days"]),
		"reason":         text(rec["reason"]),
		"justified":      boolCol(rec["justified"], false),
		"affects_salary": boolCol(rec["affectsSalary"], true),
	}
}

func absenceFromRow(row storage.Row) storage.Record {
	return storage.Record{
		"id":            text(row["id"]),
		"employeeId":    text(row["employee_id"]),
		"kind":          text(row["kind"]),
		"startDate":     text(row["start_date"]),
		"endDate":       text(row["end_date"]),
		"days":          number(row["days"]),
		"reason":        text(row["reason"]),
		"justified":     boolField(row["justified"], false),
		"affectsSalary": boolField(row["affects_salary"], true),
	}
}

// Holiday usage rows have no natural id; the collection spec synthesizes
// employeeId+year before these transforms run, so id is always present here.
func holidayToRow(rec storage.Record) storage.Row {
	return storage.Row{
		"id":             text(rec["id"]),
		"employee_id":    text(rec["employeeId"]),
		"year":           number(rec["year"]),
		"days_entitled":  number(rec["daysEntitled"]),
		"days_used":      number(rec["daysUsed"]),
		"days_remaining": number(rec["daysRemaining"]),
		"updated_at":     text(rec["updatedAt"]),
	}
}

func holidayFromRow(row storage.Row) storage.Record {
	return storage.Record{
		"id":            text(row["id"]),
		"employeeId":    text(row["employee_id"]),
		"year":          number(row["year"]),
		"daysEntitled":  number(row["days_entitled"]),
		"daysUsed":      number(row["days_used"]),
		"daysRemaining": number(row["days_remaining"]),
		"updatedAt":     text(row["updated_at"]),
	}
}

func settingsToRow(rec storage.Record) storage.Row {
	return storage.Row{
		"id":                text(rec["id"]),
		"company_name":      text(rec["companyName"]),
		"company_nif":       text(rec["companyNif"]),
		"address":           text(rec["address"]),
		"phone":             text(rec["phone"]),
		"email":             text(rec["email"]),
		"currency":          text(rec["currency"]),
		"language":          text(rec["language"]),
		"payroll_day":       number(rec["payrollDay"]),
		"selected_province": text(rec["selectedProvince"]),
		"network_mode":      text(rec["networkMode"]),
		"server_ip":         text(rec["serverIP"]),
		"server_port":       number(rec["serverPort"]),
	}
}

func settingsFromRow(row storage.Row) storage.Record {
	return storage.Record{
		"id":               text(row["id"]),
		"companyName":      text(row["company_name"]),
		"companyNif":       text(row["company_nif"]),
		"address":          text(row["address"]),
		"phone":            text(row["phone"]),
		"email":            text(row["email"]),
		"currency":         text(row["currency"]),
		"language":         text(row["language"]),
		"payrollDay":       number(row["payroll_day"]),
		"selectedProvince": text(row["selected_province"]),
		"networkMode":      text(row["network_mode"]),
		"serverIP":         text(row["server_ip"]),
		"serverPort":       number(row["server_port"]),
	}
}
