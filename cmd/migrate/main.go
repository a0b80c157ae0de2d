// Command migrate applies the database schema. It is idempotent: every
// statement uses IF NOT EXISTS so re-runs are safe.
package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/lib/pq" // PostgreSQL driver
)

const schema = `
CREATE TABLE IF NOT EXISTS ats_processes (
    id          TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    description TEXT,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS ats_process_stages (
    id         TEXT PRIMARY KEY,
    process_id TEXT NOT NULL REFERENCES ats_processes(id) ON DELETE CASCADE,
    name       TEXT NOT NULL,
    position   INT  NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_stages_process ON ats_process_stages(process_id, position);

CREATE TABLE IF NOT EXISTS ats_candidates (
    id                 TEXT PRIMARY KEY,
    process_id         TEXT NOT NULL REFERENCES ats_processes(id) ON DELETE CASCADE,
    stage_id           TEXT NOT NULL REFERENCES ats_process_stages(id),
    name               TEXT NOT NULL,
    email              TEXT NOT NULL,
    phone              TEXT,
    description        TEXT,
    source             TEXT,
    salary_expectation TEXT,
    agreed_salary      TEXT,
    age                INT,
    dni                TEXT,
    linkedin_url       TEXT,
    address            TEXT,
    province           TEXT,
    district           TEXT,
    attachments        TEXT[] NOT NULL DEFAULT '{}',
    hired_at           TIMESTAMPTZ,
    created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_candidates_process ON ats_candidates(process_id);
CREATE INDEX IF NOT EXISTS idx_candidates_stage   ON ats_candidates(stage_id);
CREATE INDEX IF NOT EXISTS idx_candidates_email   ON ats_candidates(process_id, email);
`

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Database unreachable: %v", err)
	}

	if _, err := db.Exec(schema); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Schema applied")
}
