package mapper

import "folharh/internal/storage"

func branchToRow(rec storage.Record) storage.Row {
	return storage.Row{
		"id":              text(rec["id"]),
		"name":            text(rec["name"]),
		"code":            text(rec["code"]),
		"province":        text(rec["province"]),
		"municipality":    text(rec["municipality"]),
		"address":         text(rec["address"]),
		"phone":           text(rec["phone"]),
		"email":           text(rec["email"]),
		"manager_name":    text(rec["managerName"]),
		"is_headquarters": boolCol(rec["isHeadquarters"], false),
		"is_active":       boolCol(rec["isActive"], true),
	}
}

func branchFromRow(row storage.Row) storage.Record {
	return storage.Record{
		"id":             text(row["id"]),
		"name":           text(row["name"]),
		"code":           text(row["code"]),
		"province":       text(row["province"]),
		"municipality":   text(row["municipality"]),
		"address":        text(row["address"]),
		"phone":          text(row["phone"]),
		"email":          text(row["email"]),
		"managerName":    text(row["manager_name"]),
		"isHeadquarters": boolField(row["is_headquarters"], false),
		"isActive":       boolField(row["is_active"], true),
	}
}
