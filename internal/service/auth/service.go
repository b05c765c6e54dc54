package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/auth"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/domain/user"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	userRepo   user.UserRepository
	jwtService jwt.Service
}

func NewAuthService(userRepo user.UserRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	u, err := s.userRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		// Do not reveal whether the employee ID exists.
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(u.EmployeeID, u.Name, u.Role)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.LoginResponse{
		Token:      token,
		ExpiresAt:  expiresAt,
		EmployeeID: u.EmployeeID,
		Name:       u.Name,
		Role:       string(u.Role),
	}, nil
}

// Register implements auth.AuthService. Creating an employee requires an
// admin caller; creating an admin or superadmin requires a superadmin caller.
func (s *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	role := user.RoleEmployee
	if req.Role != "" {
		role = user.Role(req.Role)
	}

	switch role {
	case user.RoleEmployee:
		if !identity.Role.IsAdmin() {
			return user.UserResponse{}, user.ErrAdminPrivilegeRequired
		}
	case user.RoleAdmin, user.RoleSuperAdmin:
		if !identity.Role.IsSuperAdmin() {
			return user.UserResponse{}, user.ErrSuperAdminRequired
		}
	default:
		return user.UserResponse{}, user.ErrInvalidRole
	}

	return s.create(ctx, req, role)
}

// PublicRegister implements auth.AuthService. The role is always employee,
// whatever the request claims.
func (s *AuthServiceImpl) PublicRegister(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	req.Role = ""
	return s.create(ctx, req, user.RoleEmployee)
}

// RegisterSuperAdmin implements auth.AuthService.
func (s *AuthServiceImpl) RegisterSuperAdmin(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	req.Role = ""
	return s.create(ctx, req, user.RoleSuperAdmin)
}

func (s *AuthServiceImpl) create(ctx context.Context, req auth.RegisterRequest, role user.Role) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		EmployeeID:   req.EmployeeID,
		Name:         req.Name,
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(created), nil
}

// Profile implements auth.AuthService.
func (s *AuthServiceImpl) Profile(ctx context.Context) (user.UserResponse, error) {
	identity, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	u, err := s.userRepo.GetByEmployeeID(ctx, identity.EmployeeID)
	if err != nil {
		return user.UserResponse{}, err
	}

	return user.ToResponse(u), nil
}
