package mapper

import "folharh/internal/storage"

func userToRow(rec storage.Record) storage.Row {
	return storage.Row{
		"id":                 text(rec["id"]),
		"username":           text(rec["username"]),
		"full_name":          text(rec["fullName"]),
		"email":              text(rec["email"]),
		"password_hash":      text(rec["passwordHash"]),
		"role":               text(rec["role"]),
		"branch_id":          text(rec["branchId"]),
		"custom_permissions": jsonCol(rec["customPermissions"]),
		"is_active":          boolCol(rec["isActive"], true),
		"last_login_at":      text(rec["lastLoginAt"]),
	}
}

func userFromRow(row storage.Row) storage.Record {
	return storage.Record{
		"id":                text(row["id"]),
		"username":          text(row["username"]),
		"fullName":          text(row["full_name"]),
		"email":             text(row["email"]),
		"passwordHash":      text(row["password_hash"]),
		"role":              text(row["role"]),
		"branchId":          text(row["branch_id"]),
		"customPermissions": jsonField(row["custom_permissions"]),
		"isActive":          boolField(row["is_active"], true),
		"lastLoginAt":       text(row["last_login_at"]),
	}
}
