package users

import (
	"context"
)

// UserRepository defines the interface for user-related persistence operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID string) (*User, error)
	GetByLogin(ctx context.Context, loginName string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdateByID(ctx context.Context, user *User) error
}

// UserDetailsRepository persists the per-user working state. Details rows are
// created lazily on first access.
type UserDetailsRepository interface {
	Get(ctx context.Context, userID string) (*UserDetails, error)
	Save(ctx context.Context, details *UserDetails) error
	AddMySamples(ctx context.Context, userID string, sampleIDs []string) error
	RemoveMySamples(ctx context.Context, userID string, sampleIDs []string) error
	// WatchersOf returns the IDs of all users that hold any of the given
	// samples in their "My Samples" set. Used for feed fan-out.
	WatchersOf(ctx context.Context, sampleIDs []string) ([]string, error)
}

// PermissionRepository stores per-user, per-process-kind permission grants.
type PermissionRepository interface {
	Grant(ctx context.Context, userID, processKind, permission string) error
	Revoke(ctx context.Context, userID, processKind, permission string) error
	Has(ctx context.Context, userID, processKind, permission string) (bool, error)
	// UsersWithAnyPermission returns the users holding any grant on the
	// process kind. Status messages about an apparatus go to these users.
	UsersWithAnyPermission(ctx context.Context, processKind string) ([]string, error)
}

// UserService defines account management and authentication operations.
type UserService interface {
	// Register creates a new account with a bcrypt-hashed password and its
	// lazily initialized details row.
	Register(ctx context.Context, loginName, displayName, email, password string) (*User, error)

	// EnsureAdmin makes sure an admin account with the login name exists,
	// creating or promoting it as needed. Used to seed the first admin on a
	// fresh database; existing passwords are left untouched.
	EnsureAdmin(ctx context.Context, loginName, password string) (*User, error)

	// Authenticate checks login name and password. Inactive accounts fail
	// with the same error as bad credentials.
	Authenticate(ctx context.Context, loginName, password string) (*User, error)

	GetByLogin(ctx context.Context, loginName string) (*User, error)
	GetByID(ctx context.Context, userID string) (*User, error)
	List(ctx context.Context) ([]*User, error)

	// Details returns the user's details, creating them when absent.
	Details(ctx context.Context, userID string) (*UserDetails, error)
}

// TokenService issues and verifies the bearer tokens of the remote protocol.
type TokenService interface {
	// Issue returns a signed token for the user and its expiry time.
	Issue(user *User) (string, int64, error)

	// Verify checks the token signature and expiry and returns the user ID.
	// Failures come back as ErrAuthFailed.
	Verify(token string) (string, error)
}

// PermissionChecker answers permission questions for the service layer.
// Admins pass every check.
type PermissionChecker interface {
	// EnsureCanAdd fails with ErrAccessDenied unless the user may add
	// processes of the given kind.
	EnsureCanAdd(ctx context.Context, userID, processKind string) error

	// EnsureCanEdit fails with ErrAccessDenied unless the user may edit
	// processes of the given kind, or is their operator.
	EnsureCanEdit(ctx context.Context, userID, operatorID, processKind string) error

	// EnsureCanView fails with ErrAccessDenied unless the user may view
	// processes of the given kind, or is their operator. Add and edit
	// grants imply view.
	EnsureCanView(ctx context.Context, userID, operatorID, processKind string) error

	// Grant and Revoke manage permission entries; only admins may call them.
	Grant(ctx context.Context, actorID, userID, processKind, permission string) error
	Revoke(ctx context.Context, actorID, userID, processKind, permission string) error
}
