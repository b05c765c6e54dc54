package auth

import (
	"context"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/user"
)

// AuthService defines authentication operations. Identity resolution stops
// here; everything downstream trusts the employee_id and role claims.
type AuthService interface {
	// Login verifies credentials and issues an access token
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Register creates a user with the requested role (admin only)
	Register(ctx context.Context, req RegisterRequest) (user.UserResponse, error)

	// PublicRegister creates a user, forcing the employee role
	PublicRegister(ctx context.Context, req RegisterRequest) (user.UserResponse, error)

	// RegisterSuperAdmin creates a superadmin account
	RegisterSuperAdmin(ctx context.Context, req RegisterRequest) (user.UserResponse, error)

	// Profile returns the authenticated caller's user record
	Profile(ctx context.Context) (user.UserResponse, error)
}
