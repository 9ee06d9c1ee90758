package mapper

import "folharh/internal/storage"

// The payroll_records table stores two record kinds, told apart by
// record_type: "period" rows describe a payroll month, "entry" rows one
// employee's computed pay inside a period. Columns of the other kind stay
// null.
func payrollToRow(rec storage.Record) storage.Row {
	return storage.Row{
		"id":          text(rec["id"]),
		"record_type": text(rec["recordType"]),

		// period fields
		"name":         text(rec["name"]),
		"year":         number(rec["year"]),
		"month":        number(rec["month"]),
		"status":       text(rec["status"]),
		"processed_at": text(rec["processedAt"]),

		// entry fields
		"period_id":        text(rec["periodId"]),
		"employee_id":      text(rec["employeeId"]),
		"gross_salary":     number(rec["grossSalary"]),
		"base_salary":      number(rec["baseSalary"]),
		"allowances_total": number(rec["allowancesTotal"]),
		"irt_amount":       number(rec["irtAmount"]),
		"inss_amount":      number(rec["inssAmount"]),
		"other_deductions": number(rec["otherDeductions"]),
		"net_salary":       number(rec["netSalary"]),
		"days_worked":      number(rec["daysWorked"]),
		"paid":             boolCol(rec["paid"], false),
	}
}

func payrollFromRow(row storage.Row) storage.Record {
	return storage.Record{
		"id":         text(row["id"]),
		"recordType": text(row["record_type"]),

		"name":        text(row["name"]),
		"year":        number(row["year"]),
		"month":       number(row["month"]),
		"status":      text(row["status"]),
		"processedAt": text(row["processed_at"]),

		"periodId":        text(row["period_id"]),
		"employeeId":      text(row["employee_id"]),
		"grossSalary":     number(row["gross_salary"]),
		"baseSalary":      number(row["base_salary"]),
		"allowancesTotal": number(row["allowances_total"]),
		"irtAmount":       number(row["irt_amount"]),
		"inssAmount":      number(row["inss_amount"]),
		"otherDeductions": number(row["other_deductions"]),
		"netSalary":       number(row["net_salary"]),
		"daysWorked":      number(row["days_worked"]),
		"paid":            boolField(row["paid"], false),
	}
}
