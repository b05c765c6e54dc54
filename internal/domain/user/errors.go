package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrEmployeeIDExists        = errors.New("employee ID already exists")
	ErrInvalidRole             = errors.New("invalid role")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrSuperAdminRequired      = errors.New("superadmin privilege required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
