package user

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/timelog"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/user"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/pkg/database"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/pkg/jwt"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/repository/postgresql"
)

type UserServiceImpl struct {
	db          *database.DB
	userRepo    user.UserRepository
	timeLogRepo timelog.TimeLogRepository
}

func NewUserService(db *database.DB, userRepo user.UserRepository, timeLogRepo timelog.TimeLogRepository) user.UserService {
	return &UserServiceImpl{
		db:          db,
		userRepo:    userRepo,
		timeLogRepo: timeLogRepo,
	}
}

// ListEmployees implements user.UserService.
func (s *UserServiceImpl) ListEmployees(ctx context.Context) ([]user.UserResponse, error) {
	if err := s.requireRole(ctx, user.RoleAdmin); err != nil {
		return nil, err
	}

	role := user.RoleEmployee
	return s.listByRole(ctx, &role)
}

// GetEmployee implements user.UserService.
func (s *UserServiceImpl) GetEmployee(ctx context.Context, employeeID string) (user.UserResponse, error) {
	if err := s.requireRole(ctx, user.RoleAdmin); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.userRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(u), nil
}

// UpdateEmployee implements user.UserService.
func (s *UserServiceImpl) UpdateEmployee(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	if !identity.Role.IsAdmin() {
		return user.UserResponse{}, user.ErrAdminPrivilegeRequired
	}

	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.userRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return user.UserResponse{}, err
	}
	if u.Role != user.RoleEmployee {
		return user.UserResponse{}, user.ErrUserNotFound
	}

	if req.Role != nil && user.Role(*req.Role) != user.RoleEmployee && !identity.Role.IsSuperAdmin() {
		return user.UserResponse{}, user.ErrSuperAdminRequired
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(updated), nil
}

// DeleteEmployee implements user.UserService. The employee's time logs go
// with the account, in the same transaction.
func (s *UserServiceImpl) DeleteEmployee(ctx context.Context, employeeID string) error {
	if err := s.requireRole(ctx, user.RoleAdmin); err != nil {
		return err
	}

	u, err := s.userRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}
	if u.Role != user.RoleEmployee {
		return user.ErrInsufficientPermissions
	}

	return postgresql.WithTransaction(ctx, s.db, func(ctx context.Context) error {
		if err := s.timeLogRepo.DeleteByEmployee(ctx, employeeID); err != nil {
			return fmt.Errorf("failed to delete employee time logs: %w", err)
		}
		return s.userRepo.Delete(ctx, employeeID)
	})
}

// ListAdmins implements user.UserService.
func (s *UserServiceImpl) ListAdmins(ctx context.Context) ([]user.UserResponse, error) {
	if err := s.requireRole(ctx, user.RoleSuperAdmin); err != nil {
		return nil, err
	}

	role := user.RoleAdmin
	return s.listByRole(ctx, &role)
}

// GetAdmin implements user.UserService.
func (s *UserServiceImpl) GetAdmin(ctx context.Context, employeeID string) (user.UserResponse, error) {
	if err := s.requireRole(ctx, user.RoleSuperAdmin); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.userRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return user.UserResponse{}, err
	}
	if u.Role != user.RoleAdmin {
		return user.UserResponse{}, user.ErrUserNotFound
	}

	return user.ToResponse(u), nil
}

// UpdateAdmin implements user.UserService.
func (s *UserServiceImpl) UpdateAdmin(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := s.requireRole(ctx, user.RoleSuperAdmin); err != nil {
		return user.UserResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	u, err := s.userRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return user.UserResponse{}, err
	}
	if u.Role != user.RoleAdmin {
		return user.UserResponse{}, user.ErrUserNotFound
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	updated, err := s.userRepo.Update(ctx, u)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(updated), nil
}

// DeleteAdmin implements user.UserService. Superadmins cannot delete their
// own account through this path.
func (s *UserServiceImpl) DeleteAdmin(ctx context.Context, employeeID string) error {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}
	if !identity.Role.IsSuperAdmin() {
		return user.ErrSuperAdminRequired
	}
	if identity.EmployeeID == employeeID {
		return user.ErrInsufficientPermissions
	}

	u, err := s.userRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return err
	}
	if u.Role != user.RoleAdmin {
		return user.ErrUserNotFound
	}

	return s.userRepo.Delete(ctx, employeeID)
}

func (s *UserServiceImpl) listByRole(ctx context.Context, role *user.Role) ([]user.UserResponse, error) {
	users, err := s.userRepo.List(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, nil
}

// requireRole rejects callers below the given role. Superadmin satisfies the
// admin requirement.
func (s *UserServiceImpl) requireRole(ctx context.Context, minimum user.Role) error {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}

	switch minimum {
	case user.RoleSuperAdmin:
		if !identity.Role.IsSuperAdmin() {
			return user.ErrSuperAdminRequired
		}
	case user.RoleAdmin:
		if !identity.Role.IsAdmin() {
			return user.ErrAdminPrivilegeRequired
		}
	}

	return nil
}
