package database

import (
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// sqliteDialector opens a pure-Go SQLite file with foreign keys enforced, so the
// cascade and restrict rules behave as they do on postgres.
func sqliteDialector(path string) gorm.Dialector {
	return sqlite.Open(sqliteDSN(path))
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
