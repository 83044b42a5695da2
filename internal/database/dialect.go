package database

import "fmt"

// dialect is what differs between the SQL backends. Queries are written
// with ? placeholders and rebound by sqlx for the driver.
type dialect struct {
	driver    string
	init      []string // run once after connecting
	timestamp string
}

var (
	sqliteDialect = dialect{
		driver: "sqlite",
		init: []string{
			"PRAGMA foreign_keys = ON",
			"PRAGMA journal_mode = WAL",
			"PRAGMA busy_timeout = 5000",
		},
		timestamp: "TIMESTAMP",
	}
	postgresDialect = dialect{
		driver:    "postgres",
		timestamp: "TIMESTAMPTZ",
	}
)

// dialectFor returns the dialect of a SQL store driver
func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverSQLite:
		return sqliteDialect, nil
	case DriverPostgres:
		return postgresDialect, nil
	default:
		return dialect{}, fmt.Errorf("driver %q is not a SQL store", driver)
	}
}
