package sqlite

import (
	"context"
	"strings"

	"github.com/brightpath-agency/brightpath/internal/domain"
)

type companiesRepo struct {
	q dbtx
}

const companyColumns = `id, name, email, phone_number, industry, workforce_size,
	location, roles, specification, status, created_at`

func (r *companiesRepo) GetCompanyByID(ctx context.Context, id int64) (domain.Company, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = ?`, id)
	return scanCompany(row)
}

func (r *companiesRepo) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *companiesRepo) CreateCompany(ctx context.Context, c domain.Company) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO companies (name, email, phone_number, industry, workforce_size,
			location, roles, specification, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Email, c.PhoneNumber, c.Industry, c.WorkforceSize,
		c.Location, joinRoles(c.Roles), c.Specification, c.Status, now())
	if err != nil {
		return 0, mapConstraint(err)
	}
	return res.LastInsertId()
}

func scanCompany(row rowScanner) (domain.Company, error) {
	var (
		c     domain.Company
		roles string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.PhoneNumber, &c.Industry,
		&c.WorkforceSize, &c.Location, &roles, &c.Specification, &c.Status,
		&c.CreatedAt)
	if err != nil {
		return domain.Company{}, mapNotFound(err)
	}
	c.Roles = splitRoles(roles)
	return c, nil
}

// Roles are stored as a single comma-joined column and split only here, at
// the persistence boundary.
func joinRoles(roles []string) string {
	return strings.Join(roles, ",")
}

func splitRoles(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
