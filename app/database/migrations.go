package database

import (
	"database/sql"
	"log"
)

// RunMigrations applies the portal schema. Every statement is idempotent
// so the function is safe to run on every startup.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			first_name VARCHAR(100) NOT NULL,
			last_name VARCHAR(100) NOT NULL,
			phone VARCHAR(20),
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS roles (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name VARCHAR(50) UNIQUE NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id),
			role_id UUID NOT NULL REFERENCES roles(id),
			PRIMARY KEY (user_id, role_id)
		)`,

		`INSERT INTO roles (name) VALUES ('student'), ('admin')
			ON CONFLICT (name) DO NOTHING`,

		`CREATE TABLE IF NOT EXISTS student_profiles (
			user_id UUID PRIMARY KEY REFERENCES users(id),
			full_name VARCHAR(255) NOT NULL,
			student_id_no VARCHAR(50) NOT NULL DEFAULT '',
			mobile_number VARCHAR(30) NOT NULL DEFAULT '',
			nationality VARCHAR(100) NOT NULL DEFAULT 'Malaysian',
			campus_id UUID,
			faculty_id UUID,
			course_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS scholarships (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			provider_name VARCHAR(255) NOT NULL DEFAULT '',
			amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			deadline TIMESTAMPTZ NOT NULL,
			is_published BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS applications (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			scholarship_id UUID NOT NULL REFERENCES scholarships(id),
			student_id UUID NOT NULL REFERENCES users(id),
			status VARCHAR(20) NOT NULL DEFAULT 'draft',
			submitted_at TIMESTAMPTZ,
			locked_at TIMESTAMPTZ,
			reopened_at TIMESTAMPTZ,
			admin_notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE INDEX IF NOT EXISTS idx_applications_student
			ON applications(student_id) WHERE deleted_at IS NULL`,

		`CREATE INDEX IF NOT EXISTS idx_applications_status
			ON applications(status) WHERE deleted_at IS NULL`,

		`CREATE TABLE IF NOT EXISTS application_form_data (
			application_id UUID PRIMARY KEY REFERENCES applications(id),
			schema_version INT NOT NULL DEFAULT 0,
			payload JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS application_attachments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			application_id UUID NOT NULL REFERENCES applications(id),
			slot_key VARCHAR(255) NOT NULL,
			object_key VARCHAR(512) NOT NULL,
			file_name VARCHAR(255) NOT NULL DEFAULT '',
			size_bytes BIGINT NOT NULL DEFAULT 0,
			mime_type VARCHAR(100) NOT NULL DEFAULT '',
			verified BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (application_id, slot_key)
		)`,

		`CREATE TABLE IF NOT EXISTS application_status_history (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			application_id UUID NOT NULL REFERENCES applications(id),
			from_status VARCHAR(20),
			to_status VARCHAR(20) NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			actor_id UUID,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS application_option_items (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			kind VARCHAR(30) NOT NULL,
			parent_id UUID REFERENCES application_option_items(id),
			label VARCHAR(255) NOT NULL,
			sort_order INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS email_logs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			application_id UUID REFERENCES applications(id),
			recipient VARCHAR(255) NOT NULL,
			subject VARCHAR(255) NOT NULL,
			status VARCHAR(20) NOT NULL,
			error_message TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration statement failed: %v", err)
			return err
		}
	}

	if err := addReopenedAtColumn(db); err != nil {
		return err
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// addReopenedAtColumn backfills the reopened_at column on deployments
// created before the reopen workflow existed.
func addReopenedAtColumn(db *sql.DB) error {
	query := `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1
				FROM information_schema.columns
				WHERE table_name = 'applications'
				AND column_name = 'reopened_at'
			) THEN
				ALTER TABLE applications ADD COLUMN reopened_at TIMESTAMPTZ;
			END IF;
		END $$;
	`
	if _, err := db.Exec(query); err != nil {
		log.Printf("Failed to run migration for reopened_at column: %v", err)
		return err
	}
	return nil
}
