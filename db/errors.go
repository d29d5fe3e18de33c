package db

import (
	"strings"

	"github.com/go-sql-driver/mysql"
)

func IsDupKeyErr(error *mysql.MySQLError) bool {
	return strings.Contains(error.Error(), "Duplicate")
}
