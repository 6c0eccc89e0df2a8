package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/amezghal/autoecole/internal/db"
	"github.com/amezghal/autoecole/internal/domain"
)

// SQLiteCandidateRepo implements CandidateRepo using a SQLite database.
// Reads always hydrate the full phase-progress set alongside the candidate.
type SQLiteCandidateRepo struct {
	db db.DBTX
}

// NewSQLiteCandidateRepo creates a new SQLiteCandidateRepo.
func NewSQLiteCandidateRepo(conn db.DBTX) *SQLiteCandidateRepo {
	return &SQLiteCandidateRepo{db: conn}
}

func (r *SQLiteCandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	query := `INSERT INTO candidates (id, name, license_category, status, total_fee, paid_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.LicenseCategory,
		string(c.Status),
		c.TotalFee,
		c.PaidAmount,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting candidate: %w", err)
	}
	for i := range c.Progress {
		if err := r.insertProgress(ctx, c.ID, &c.Progress[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteCandidateRepo) insertProgress(ctx context.Context, candidateID string, pp *domain.PhaseProgress) error {
	query := `INSERT INTO phase_progress (candidate_id, phase, status, sessions_completed, sessions_plan,
		exam_attempts, exam_passed, last_exam_date, exam_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		candidateID,
		string(pp.Phase),
		string(pp.Status),
		pp.SessionsCompleted,
		pp.SessionsPlan,
		pp.ExamAttempts,
		boolToInt(pp.ExamPassed),
		nullableTimeToString(pp.LastExamDate, dateLayout),
		nullableTimeToString(pp.ExamDate, dateLayout),
	)
	if err != nil {
		return fmt.Errorf("inserting phase progress: %w", err)
	}
	return nil
}

func (r *SQLiteCandidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := `SELECT id, name, license_category, status, total_fee, paid_amount, created_at, updated_at
		FROM candidates WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	c, err := r.scanCandidate(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadProgress(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *SQLiteCandidateRepo) List(ctx context.Context, includeDeleted bool) ([]*domain.Candidate, error) {
	query := `SELECT id, name, license_category, status, total_fee, paid_amount, created_at, updated_at
		FROM candidates`
	if !includeDeleted {
		query += ` WHERE status != 'deleted'`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing candidates: %w", err)
	}
	defer rows.Close()

	var candidates []*domain.Candidate
	for rows.Next() {
		c, err := r.scanCandidateRow(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating candidates: %w", err)
	}
	for _, c := range candidates {
		if err := r.loadProgress(ctx, c); err != nil {
			return nil, err
		}
	}
	return candidates, nil
}

func (r *SQLiteCandidateRepo) Update(ctx context.Context, c *domain.Candidate) error {
	query := `UPDATE candidates SET name = ?, license_category = ?, status = ?,
		total_fee = ?, paid_amount = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name,
		c.LicenseCategory,
		string(c.Status),
		c.TotalFee,
		c.PaidAmount,
		time.Now().UTC().Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating candidate: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("candidate %s: %w", c.ID, ErrNotFound)
	}

	for i := range c.Progress {
		pp := &c.Progress[i]
		pq := `UPDATE phase_progress SET status = ?, sessions_completed = ?, sessions_plan = ?,
			exam_attempts = ?, exam_passed = ?, last_exam_date = ?, exam_date = ?
			WHERE candidate_id = ? AND phase = ?`
		_, err := r.db.ExecContext(ctx, pq,
			string(pp.Status),
			pp.SessionsCompleted,
			pp.SessionsPlan,
			pp.ExamAttempts,
			boolToInt(pp.ExamPassed),
			nullableTimeToString(pp.LastExamDate, dateLayout),
			nullableTimeToString(pp.ExamDate, dateLayout),
			c.ID,
			string(pp.Phase),
		)
		if err != nil {
			return fmt.Errorf("updating phase progress: %w", err)
		}
	}
	return nil
}

// Delete soft-deletes the candidate by flipping status to deleted. Booking
// history stays intact.
func (r *SQLiteCandidateRepo) Delete(ctx context.Context, id string) error {
	query := `UPDATE candidates SET status = 'deleted', updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("deleting candidate: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("candidate %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteCandidateRepo) AddPayment(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (id, candidate_id, amount, paid_at, note) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.CandidateID,
		p.Amount,
		p.PaidAt.Format(time.RFC3339),
		p.Note,
	)
	if err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}
	return nil
}

func (r *SQLiteCandidateRepo) ListPayments(ctx context.Context, candidateID string) ([]*domain.Payment, error) {
	query := `SELECT id, candidate_id, amount, paid_at, note FROM payments
		WHERE candidate_id = ? ORDER BY paid_at`
	rows, err := r.db.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		var p domain.Payment
		var paidAtStr string
		if err := rows.Scan(&p.ID, &p.CandidateID, &p.Amount, &paidAtStr, &p.Note); err != nil {
			return nil, fmt.Errorf("scanning payment row: %w", err)
		}
		p.PaidAt, err = time.Parse(time.RFC3339, paidAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing paid_at: %w", err)
		}
		payments = append(payments, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}
	return payments, nil
}

func (r *SQLiteCandidateRepo) loadProgress(ctx context.Context, c *domain.Candidate) error {
	query := `SELECT phase, status, sessions_completed, sessions_plan, exam_attempts,
		exam_passed, last_exam_date, exam_date
		FROM phase_progress WHERE candidate_id = ?`
	rows, err := r.db.QueryContext(ctx, query, c.ID)
	if err != nil {
		return fmt.Errorf("loading phase progress: %w", err)
	}
	defer rows.Close()

	byPhase := make(map[domain.Phase]domain.PhaseProgress, len(domain.Phases))
	for rows.Next() {
		var pp domain.PhaseProgress
		var phaseStr, statusStr string
		var examPassed int
		var lastExam, examDate sql.NullString
		if err := rows.Scan(&phaseStr, &statusStr, &pp.SessionsCompleted, &pp.SessionsPlan,
			&pp.ExamAttempts, &examPassed, &lastExam, &examDate); err != nil {
			return fmt.Errorf("scanning phase progress row: %w", err)
		}
		pp.Phase = domain.Phase(phaseStr)
		pp.Status = domain.PhaseStatus(statusStr)
		pp.ExamPassed = intToBool(examPassed)
		pp.LastExamDate = parseNullableTime(lastExam, dateLayout)
		pp.ExamDate = parseNullableTime(examDate, dateLayout)
		byPhase[pp.Phase] = pp
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating phase progress: %w", err)
	}

	// Canonical order regardless of row order.
	c.Progress = c.Progress[:0]
	for _, phase := range domain.Phases {
		if pp, ok := byPhase[phase]; ok {
			c.Progress = append(c.Progress, pp)
		}
	}
	return nil
}

func (r *SQLiteCandidateRepo) scanCandidate(row *sql.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	var statusStr, createdAtStr, updatedAtStr string

	err := row.Scan(&c.ID, &c.Name, &c.LicenseCategory, &statusStr,
		&c.TotalFee, &c.PaidAmount, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("candidate: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning candidate: %w", err)
	}
	return r.populateCandidate(&c, statusStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteCandidateRepo) scanCandidateRow(rows *sql.Rows) (*domain.Candidate, error) {
	var c domain.Candidate
	var statusStr, createdAtStr, updatedAtStr string

	err := rows.Scan(&c.ID, &c.Name, &c.LicenseCategory, &statusStr,
		&c.TotalFee, &c.PaidAmount, &createdAtStr, &updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("scanning candidate row: %w", err)
	}
	return r.populateCandidate(&c, statusStr, createdAtStr, updatedAtStr)
}

func (r *SQLiteCandidateRepo) populateCandidate(c *domain.Candidate, statusStr, createdAtStr, updatedAtStr string) (*domain.Candidate, error) {
	c.Status = domain.CandidateStatus(statusStr)

	var parseErr error
	c.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	c.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}
	return c, nil
}
