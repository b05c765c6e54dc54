package user

import "context"

// UserService defines employee and admin account management. Callers are
// identified through their token claims; role checks happen in the service.
type UserService interface {
	// ListEmployees retrieves all users with the employee role (admin only)
	ListEmployees(ctx context.Context) ([]UserResponse, error)

	// GetEmployee retrieves one employee by employee ID (admin only)
	GetEmployee(ctx context.Context, employeeID string) (UserResponse, error)

	// UpdateEmployee updates an employee's name and optionally password;
	// promoting to another role requires a superadmin caller (admin only)
	UpdateEmployee(ctx context.Context, req UpdateUserRequest) (UserResponse, error)

	// DeleteEmployee removes an employee and all of their time logs
	// (admin only)
	DeleteEmployee(ctx context.Context, employeeID string) error

	// ListAdmins retrieves all users with the admin role (superadmin only)
	ListAdmins(ctx context.Context) ([]UserResponse, error)

	// GetAdmin retrieves one admin by employee ID (superadmin only)
	GetAdmin(ctx context.Context, employeeID string) (UserResponse, error)

	// UpdateAdmin updates an admin's name and optionally password
	// (superadmin only)
	UpdateAdmin(ctx context.Context, req UpdateUserRequest) (UserResponse, error)

	// DeleteAdmin removes an admin account (superadmin only)
	DeleteAdmin(ctx context.Context, employeeID string) error
}
