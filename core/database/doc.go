// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either a MySQL server or a SQLite file (or ":memory:")
// based on the application's configuration.
//
// # Connect
//
// Connect picks the dialector from Config.Driver, applies pool settings and
// pings the database before returning it.
//
// # Schema Inspection
//
// GetTableColumns lists a table's columns through SHOW COLUMNS (MySQL) or
// PRAGMA table_info (SQLite). MissingColumns compares them with the columns a
// model expects, which the cards store uses to report drift in a hand-managed
// schema.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "cards", []string{"id_ingame"})
package database
