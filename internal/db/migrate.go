package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// additions tolerate re-runs.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS candidates (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		license_category TEXT NOT NULL DEFAULT 'B',
		status           TEXT NOT NULL DEFAULT 'active'
		                 CHECK(status IN ('active','completed','deleted')),
		total_fee        INTEGER NOT NULL DEFAULT 0,
		paid_amount      INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phase_progress (
		candidate_id       TEXT NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
		phase              TEXT NOT NULL
		                   CHECK(phase IN ('highway_code','parking','driving')),
		status             TEXT NOT NULL DEFAULT 'not_started'
		                   CHECK(status IN ('not_started','in_progress','completed','failed')),
		sessions_completed INTEGER NOT NULL DEFAULT 0,
		sessions_plan      INTEGER NOT NULL DEFAULT 0,
		exam_attempts      INTEGER NOT NULL DEFAULT 0,
		exam_passed        INTEGER NOT NULL DEFAULT 0,
		last_exam_date     TEXT,
		exam_date          TEXT,
		PRIMARY KEY (candidate_id, phase)
	)`,

	`CREATE TABLE IF NOT EXISTS instructors (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'active'
		           CHECK(status IN ('active','inactive')),
		vehicle_id TEXT REFERENCES vehicles(id),
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS vehicles (
		id            TEXT PRIMARY KEY,
		plate         TEXT NOT NULL UNIQUE,
		model         TEXT NOT NULL,
		instructor_id TEXT REFERENCES instructors(id),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS lessons (
		id            TEXT PRIMARY KEY,
		candidate_id  TEXT NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
		instructor_id TEXT NOT NULL REFERENCES instructors(id),
		lesson_type   TEXT NOT NULL
		              CHECK(lesson_type IN ('highway_code','parking','driving')),
		date          TEXT NOT NULL,
		time          TEXT NOT NULL,
		status        TEXT NOT NULL DEFAULT 'scheduled'
		              CHECK(status IN ('scheduled','completed','cancelled')),
		notes         TEXT NOT NULL DEFAULT '',
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS exams (
		id             TEXT PRIMARY KEY,
		candidate_id   TEXT NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
		instructor_id  TEXT NOT NULL REFERENCES instructors(id),
		exam_type      TEXT NOT NULL
		               CHECK(exam_type IN ('highway_code','parking','driving')),
		date           TEXT NOT NULL,
		time           TEXT NOT NULL,
		status         TEXT NOT NULL DEFAULT 'scheduled'
		               CHECK(status IN ('scheduled','passed','failed','cancelled')),
		attempt_number INTEGER NOT NULL DEFAULT 1,
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS payments (
		id           TEXT PRIMARY KEY,
		candidate_id TEXT NOT NULL REFERENCES candidates(id) ON DELETE CASCADE,
		amount       INTEGER NOT NULL,
		paid_at      TEXT NOT NULL,
		note         TEXT NOT NULL DEFAULT ''
	)`,

	// Slot-uniqueness backstop for check-and-reserve: even if a conflict
	// check races, two active bookings can never share a resource slot.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_lessons_instructor_slot
		ON lessons(instructor_id, date, time) WHERE status = 'scheduled'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_lessons_candidate_slot
		ON lessons(candidate_id, date, time) WHERE status = 'scheduled'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_exams_instructor_slot
		ON exams(instructor_id, date, time) WHERE status = 'scheduled'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_exams_candidate_slot
		ON exams(candidate_id, date, time) WHERE status = 'scheduled'`,

	// One pending attempt per candidate and phase at a time.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_exams_pending_phase
		ON exams(candidate_id, exam_type) WHERE status = 'scheduled'`,

	`CREATE INDEX IF NOT EXISTS idx_lessons_candidate ON lessons(candidate_id)`,
	`CREATE INDEX IF NOT EXISTS idx_lessons_date ON lessons(date)`,
	`CREATE INDEX IF NOT EXISTS idx_exams_candidate ON exams(candidate_id)`,
	`CREATE INDEX IF NOT EXISTS idx_exams_date ON exams(date)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_candidate ON payments(candidate_id)`,
}
