package dao

import "database/sql"

type NullString struct {
	sql.NullString
}

// AsString if parent is nil, returns ""
func (ns *NullString) AsString() string {
	if !ns.NullString.Valid {
		return ""
	}
	return ns.NullString.String
}
