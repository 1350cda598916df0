package store

import (
	"context"
	"errors"

	"github.com/brightpath-agency/brightpath/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Clients() Clients
	Companies() Companies
	Assignments() Assignments
	CVFiles() CVFiles

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. This is the
	// recommended way to run multi-step operations that must be atomic
	// (e.g. the duplicate-check-then-insert of a suggestion).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user and returns the assigned id.
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) (int64, error)
}

type Clients interface {
	// GetClientByID returns a client profile by id.
	GetClientByID(ctx context.Context, id int64) (domain.Client, error)

	// GetClientByUserID returns the client owned by the given account.
	GetClientByUserID(ctx context.Context, userID int64) (domain.Client, error)

	// ListClients returns all clients ordered by creation date (newest first).
	ListClients(ctx context.Context) ([]domain.Client, error)

	// CreateClient inserts a new client and returns the assigned id.
	// Returns ErrAlreadyExists when the owning account already has one.
	CreateClient(ctx context.Context, c domain.Client) (int64, error)

	// UpdateClientStatus sets the status column. Status is the only field
	// the lifecycle service mutates after creation.
	UpdateClientStatus(ctx context.Context, clientID int64, status domain.Status) error

	// UpdateClientCVPath points cv_file_path at the newest CV artifact key.
	UpdateClientCVPath(ctx context.Context, clientID int64, key string) error

	// DeleteClient removes a client. Dependent assignments and CV rows
	// cascade per schema.
	DeleteClient(ctx context.Context, clientID int64) error
}

type Companies interface {
	GetCompanyByID(ctx context.Context, id int64) (domain.Company, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	CreateCompany(ctx context.Context, c domain.Company) (int64, error)
}

type Assignments interface {
	// GetAssignmentByPair returns the assignment for a (client, company)
	// pair, used for the duplicate-suggestion pre-check.
	GetAssignmentByPair(ctx context.Context, clientID, companyID int64) (domain.Assignment, error)

	// GetAssignmentForClient returns an assignment only when it belongs to
	// the given client. The share gateway uses this so a deleted assignment
	// revokes otherwise-valid share links.
	GetAssignmentForClient(ctx context.Context, assignmentID, clientID int64) (domain.Assignment, error)

	// CreateAssignment inserts a new assignment and returns the assigned id.
	// The UNIQUE(client_id, company_id) constraint backs the pre-check;
	// a violation surfaces as ErrAlreadyExists.
	CreateAssignment(ctx context.Context, a domain.Assignment) (int64, error)

	// ListAssignmentsForClient returns a client's assignments, newest first.
	ListAssignmentsForClient(ctx context.Context, clientID int64) ([]domain.Assignment, error)
}

type CVFiles interface {
	// CreateCVFile records metadata for an uploaded resume.
	CreateCVFile(ctx context.Context, f domain.CVFile) (int64, error)

	// GetLatestCVFileForClient returns the newest CV row for a client.
	GetLatestCVFileForClient(ctx context.Context, clientID int64) (domain.CVFile, error)
}
