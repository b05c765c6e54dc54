package user

import "context"

// UserRepository defines data access methods for user records. A user row is
// both the login identity and the employee record; employees are users with
// the employee role.
type UserRepository interface {
	// Create inserts a new user. Fails with ErrEmployeeIDExists when the
	// employee ID is already taken.
	Create(ctx context.Context, u User) (User, error)

	// GetByEmployeeID retrieves a user by its employee ID
	GetByEmployeeID(ctx context.Context, employeeID string) (User, error)

	// List retrieves users, optionally filtered by role
	List(ctx context.Context, role *Role) ([]User, error)

	// Update updates name, role, and optionally the password hash
	Update(ctx context.Context, u User) (User, error)

	// Delete removes a user; time logs cascade at the database level
	Delete(ctx context.Context, employeeID string) error
}
