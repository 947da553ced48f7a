// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/audit"
	"github.com/your-org/pos-backend/internal/pkg/apperror"
	"github.com/your-org/pos-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	jwtManager      *auth.JWTManager
	passwordManager *auth.PasswordManager
	auditService    *audit.Service
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		jwtManager:      auth.NewJWTManager(cfg),
		passwordManager: auth.NewPasswordManager(cfg),
		auditService:    audit.NewService(db),
	}
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role"`
}

// LoginRequest represents user login data
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents a successful authentication result
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Register creates a new user account
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
	role := req.Role
	if role == "" {
		role = auth.RoleCashier
	}
	if !auth.IsValidRole(role) {
		return nil, apperror.InvalidRequest("unknown role %q", role)
	}

	// Check username/email uniqueness
	var existing User
	err := s.db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		return nil, apperror.Conflict("username or email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Internal(err, "failed to check existing user")
	}

	hashed, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.InvalidRequest("%v", err)
	}

	newUser := User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		Role:     role,
		IsActive: true,
	}

	if err := s.db.Create(&newUser).Error; err != nil {
		return nil, apperror.Internal(err, "failed to create user")
	}

	return s.issueTokens(&newUser)
}

// Login authenticates a user by username and password
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var u User
	if err := s.db.Where("username = ?", req.Username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.InvalidRequest("invalid username or password")
		}
		return nil, apperror.Internal(err, "failed to load user")
	}

	if !u.IsActive {
		return nil, apperror.Forbidden("account is deactivated")
	}

	if err := s.passwordManager.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, apperror.InvalidRequest("invalid username or password")
	}

	now := time.Now().UTC()
	if err := s.db.Model(&u).Update("last_login_at", now).Error; err == nil {
		u.LastLoginAt = &now
	}

	return s.issueTokens(&u)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *Service) RefreshToken(refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperror.InvalidRequest("invalid refresh token")
	}

	var u User
	if err := s.db.First(&u, claims.UserID).Error; err != nil {
		return nil, apperror.NotFound("user not found")
	}

	if !u.IsActive {
		return nil, apperror.Forbidden("account is deactivated")
	}

	return s.issueTokens(&u)
}

// GetProfile returns the user record for the given id
func (s *Service) GetProfile(userID uint) (*User, error) {
	var u User
	if err := s.db.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, apperror.Internal(err, "failed to load user")
	}
	return &u, nil
}

// UpdateProfile updates mutable profile fields for the given user
func (s *Service) UpdateProfile(userID uint, fullName, email string) (*User, error) {
	u, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if fullName != "" {
		updates["full_name"] = fullName
	}
	if email != "" {
		updates["email"] = email
	}
	if len(updates) == 0 {
		return u, nil
	}

	if err := s.db.Model(u).Updates(updates).Error; err != nil {
		return nil, apperror.Internal(err, "failed to update profile")
	}
	return u, nil
}

func (s *Service) issueTokens(u *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, apperror.Internal(err, "failed to generate access token")
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		return nil, apperror.Internal(err, "failed to generate refresh token")
	}

	return &AuthResponse{
		User:         u,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}, nil
}

// UserListRequest represents user list query parameters
type UserListRequest struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=50"`
	Search   string `form:"q"`
	Role     string `form:"role"`
	IsActive *bool  `form:"is_active"`
}

// ListUsers retrieves user accounts with pagination and filters
func (s *Service) ListUsers(req *UserListRequest) ([]User, int64, error) {
	query := s.db.Model(&User{})

	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where(
			"username ILIKE ? OR full_name ILIKE ? OR email ILIKE ?", like, like, like)
	}
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	if req.IsActive != nil {
		query = query.Where("is_active = ?", *req.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperror.Internal(err, "failed to count users")
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 50
	}
	offset := (req.Page - 1) * req.Limit

	var users []User
	if err := query.
		Order("username ASC").
		Offset(offset).
		Limit(req.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, apperror.Internal(err, "failed to retrieve users")
	}

	return users, total, nil
}

// GetUser retrieves one user account by id
func (s *Service) GetUser(id uint) (*User, error) {
	return s.GetProfile(id)
}

// CreateUserRequest represents account creation data
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	IsActive *bool  `json:"is_active"`
}

// CreateUser creates a user account on behalf of an administrator
func (s *Service) CreateUser(req *CreateUserRequest, actorUserID uint) (*User, error) {
	if !auth.IsValidRole(req.Role) {
		return nil, apperror.InvalidRequest("unknown role %q", req.Role)
	}

	var existing User
	err := s.db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error
	if err == nil {
		return nil, apperror.Conflict("username or email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Internal(err, "failed to check existing user")
	}

	hashed, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.InvalidRequest("%v", err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	newUser := User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: active,
	}

	if err := s.db.Create(&newUser).Error; err != nil {
		return nil, apperror.Internal(err, "failed to create user")
	}

	s.auditService.Record("create_user", actorUserID, "success",
		fmt.Sprintf("created user %s with role %s", newUser.Username, newUser.Role))

	return &newUser, nil
}

// UpdateUserRequest represents account update data. Nil fields are left
// unchanged; a non-empty password is re-hashed.
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=50"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// UpdateUser updates a user account on behalf of an administrator
func (s *Service) UpdateUser(id uint, req *UpdateUserRequest, actorUserID uint) (*User, error) {
	u, err := s.GetProfile(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}

	if req.Username != nil && *req.Username != u.Username {
		if err := s.checkIdentifierFree("username", *req.Username, id); err != nil {
			return nil, err
		}
		updates["username"] = *req.Username
	}
	if req.Email != nil && *req.Email != u.Email {
		if err := s.checkIdentifierFree("email", *req.Email, id); err != nil {
			return nil, err
		}
		updates["email"] = *req.Email
	}
	if req.Password != nil && *req.Password != "" {
		hashed, err := s.passwordManager.HashPassword(*req.Password)
		if err != nil {
			return nil, apperror.InvalidRequest("%v", err)
		}
		updates["password"] = hashed
	}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Role != nil {
		if !auth.IsValidRole(*req.Role) {
			return nil, apperror.InvalidRequest("unknown role %q", *req.Role)
		}
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return u, nil
	}

	if err := s.db.Model(u).Updates(updates).Error; err != nil {
		return nil, apperror.Internal(err, "failed to update user")
	}

	s.auditService.Record("update_user", actorUserID, "success",
		fmt.Sprintf("updated user %s", u.Username))

	return u, nil
}

// DeleteUser removes a user account. The default is a soft delete that
// deactivates the account so its audit trail and sales stay attributable;
// hard removes the row.
func (s *Service) DeleteUser(id uint, hard bool, actorUserID uint) error {
	u, err := s.GetProfile(id)
	if err != nil {
		return err
	}

	if id == actorUserID {
		return apperror.InvalidRequest("cannot delete your own account")
	}

	if hard {
		if err := s.db.Unscoped().Delete(u).Error; err != nil {
			return apperror.Internal(err, "failed to delete user")
		}
	} else {
		if err := s.db.Model(u).Update("is_active", false).Error; err != nil {
			return apperror.Internal(err, "failed to deactivate user")
		}
	}

	s.auditService.Record("delete_user", actorUserID, "success",
		fmt.Sprintf("removed user %s (hard=%t)", u.Username, hard))

	return nil
}

func (s *Service) checkIdentifierFree(column, value string, excludeID uint) error {
	var count int64
	err := s.db.Model(&User{}).
		Where(column+" = ? AND id <> ?", value, excludeID).
		Count(&count).Error
	if err != nil {
		return apperror.Internal(err, "failed to check existing user")
	}
	if count > 0 {
		return apperror.Conflict("username or email already registered")
	}
	return nil
}
