package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE TABLE IF NOT EXISTS structural_engineers (
		id INTEGER PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		email VARCHAR(128) NOT NULL,
		address VARCHAR(256) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS project_managers (
		id INTEGER PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		email VARCHAR(128) NOT NULL,
		address VARCHAR(256) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS architects (
		id INTEGER PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		email VARCHAR(128) NOT NULL,
		address VARCHAR(256) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS customers (
		id INTEGER PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		phone VARCHAR(32) NOT NULL,
		email VARCHAR(128) NOT NULL,
		address VARCHAR(256) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		building_type VARCHAR(64) NOT NULL,
		address VARCHAR(256) NOT NULL,
		erf_num VARCHAR(32) NOT NULL,
		total_fee NUMERIC(18,2) NOT NULL,
		amount_paid NUMERIC(18,2) NOT NULL,
		deadline DATE NOT NULL,
		completion_date DATE,
		struc_eng_id INTEGER NOT NULL REFERENCES structural_engineers(id),
		proj_mgr_id INTEGER NOT NULL REFERENCES project_managers(id),
		architect_id INTEGER NOT NULL REFERENCES architects(id),
		cust_id INTEGER NOT NULL REFERENCES customers(id)
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_projects_name ON projects (name);`,
	`CREATE INDEX IF NOT EXISTS idx_projects_deadline ON projects (deadline) WHERE completion_date IS NULL;`,
}

// Migrate applies the schema statements in order. Every statement is
// idempotent so the set can be re-run on each startup.
func Migrate(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
