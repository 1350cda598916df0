package sqlite

import (
	"context"

	"github.com/brightpath-agency/brightpath/internal/domain"
)

type assignmentsRepo struct {
	q dbtx
}

const assignmentColumns = `id, client_id, company_id, assigned_by, status, assigned_at`

func (r *assignmentsRepo) GetAssignmentByPair(ctx context.Context, clientID, companyID int64) (domain.Assignment, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE client_id = ? AND company_id = ?`,
		clientID, companyID)
	return scanAssignment(row)
}

func (r *assignmentsRepo) GetAssignmentForClient(ctx context.Context, assignmentID, clientID int64) (domain.Assignment, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE id = ? AND client_id = ?`,
		assignmentID, clientID)
	return scanAssignment(row)
}

func (r *assignmentsRepo) CreateAssignment(ctx context.Context, a domain.Assignment) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO assignments (client_id, company_id, assigned_by, status, assigned_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.ClientID, a.CompanyID, a.AssignedBy, string(a.Status), now())
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *assignmentsRepo) ListAssignmentsForClient(ctx context.Context, clientID int64) ([]domain.Assignment, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+assignmentColumns+` FROM assignments WHERE client_id = ? ORDER BY assigned_at DESC, id DESC`,
		clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAssignment(row rowScanner) (domain.Assignment, error) {
	var (
		a      domain.Assignment
		status string
	)
	err := row.Scan(&a.ID, &a.ClientID, &a.CompanyID, &a.AssignedBy, &status, &a.AssignedAt)
	if err != nil {
		return domain.Assignment{}, mapNotFound(err)
	}
	a.Status = domain.Status(status)
	return a, nil
}
