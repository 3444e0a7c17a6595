package database

import (
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		full_name VARCHAR(255) NOT NULL DEFAULT '',
		phone VARCHAR(50),
		city VARCHAR(255),
		state VARCHAR(100),
		zip_code VARCHAR(20),
		address VARCHAR(500),
		linkedin_url VARCHAR(500),
		resume_path VARCHAR(500),
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS job_listings (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id),
		source VARCHAR(20) NOT NULL,
		source_url VARCHAR(1000) NOT NULL,
		source_job_id VARCHAR(255),
		title VARCHAR(500) NOT NULL,
		company VARCHAR(255) NOT NULL,
		location VARCHAR(255) NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		salary_info VARCHAR(255),
		job_type VARCHAR(50),
		posted_date VARCHAR(100),
		is_easy_apply BOOLEAN NOT NULL DEFAULT FALSE,
		status VARCHAR(30) NOT NULL DEFAULT 'discovered',
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id SERIAL PRIMARY KEY,
		job_id INTEGER NOT NULL UNIQUE REFERENCES job_listings(id),
		user_id INTEGER NOT NULL REFERENCES users(id),
		status VARCHAR(30) NOT NULL DEFAULT 'pending',
		resume_path VARCHAR(500),
		cover_letter_path VARCHAR(500),
		cover_letter_text TEXT,
		form_data_json TEXT,
		error_message TEXT,
		page_url VARCHAR(1000),
		screenshot_key VARCHAR(500),
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the tables when they do not exist yet.
func Migrate(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
