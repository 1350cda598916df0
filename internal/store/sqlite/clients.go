package sqlite

import (
	"context"
	"database/sql"

	"github.com/brightpath-agency/brightpath/internal/domain"
)

type clientsRepo struct {
	q dbtx
}

const clientColumns = `id, user_id, full_name, email, phone_number, location, skills,
	preferred_role, education, linkedin_url, experience, status, cv_file_path, created_at`

func (r *clientsRepo) GetClientByID(ctx context.Context, id int64) (domain.Client, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	return scanClient(row)
}

func (r *clientsRepo) GetClientByUserID(ctx context.Context, userID int64) (domain.Client, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE user_id = ?`, userID)
	return scanClient(row)
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO clients (user_id, full_name, email, phone_number, location, skills,
			preferred_role, education, linkedin_url, experience, status, cv_file_path, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.UserID, c.FullName, c.Email, c.PhoneNumber, c.Location, c.Skills,
		c.PreferredRole, c.Education, c.LinkedinURL, c.Experience,
		string(c.Status), mapStringNull(c.CVFilePath), now())
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func (r *clientsRepo) UpdateClientStatus(ctx context.Context, clientID int64, status domain.Status) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE clients SET status = ? WHERE id = ?`, string(status), clientID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *clientsRepo) UpdateClientCVPath(ctx context.Context, clientID int64, key string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE clients SET cv_file_path = ? WHERE id = ?`, mapStringNull(key), clientID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *clientsRepo) DeleteClient(ctx context.Context, clientID int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, clientID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func scanClient(row rowScanner) (domain.Client, error) {
	var (
		c      domain.Client
		status string
		cvPath sql.NullString
	)
	err := row.Scan(&c.ID, &c.UserID, &c.FullName, &c.Email, &c.PhoneNumber,
		&c.Location, &c.Skills, &c.PreferredRole, &c.Education, &c.LinkedinURL,
		&c.Experience, &status, &cvPath, &c.CreatedAt)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	c.Status = domain.Status(status)
	c.CVFilePath = mapNullString(cvPath)
	return c, nil
}

// requireRow maps zero-row updates/deletes onto ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
