package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/identity"
	"github.com/pharmalink/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// TokenIssuer creates signed access tokens for authenticated users
type TokenIssuer interface {
	// Issue returns a signed token and its expiry for the given user
	Issue(userID uuid.UUID, role identity.Role) (string, time.Time, error)
}

// SignupRequest is the input for registering a user
type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role"`
}

// LoginRequest is the input for logging in. Identifier is an email or a
// phone number.
type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token and the user's public profile
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      UserResponse  `json:"user"`
}

// UserResponse is the public view of a user
type UserResponse struct {
	ID        uuid.UUID     `json:"id"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone,omitempty"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Role      identity.Role `json:"role"`
	Active    bool          `json:"active"`
}

// ToUserResponse converts a user to its public view
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Phone:     u.Phone,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Active:    u.Active,
	}
}

// ErrInvalidCredentials is returned on any login failure. Wrong email,
// wrong phone and wrong password are indistinguishable to the caller.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials")

// AuthService handles signup and login
type AuthService struct {
	userRepo identity.UserRepository
	issuer   TokenIssuer
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo identity.UserRepository, issuer TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
		logger:   logger,
	}
}

// Signup registers a new user and returns an access token
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	role := identity.Role(req.Role)
	if req.Role == "" {
		role = identity.RoleSalesRep
	}

	user, err := identity.NewUser(req.Email, req.Phone, req.Password, req.FirstName, req.LastName, role)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	return s.issueFor(user)
}

// Login authenticates by email or phone and returns an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Identifier)
	if errors.Is(err, shared.ErrNotFound) {
		user, err = s.userRepo.FindByPhone(ctx, req.Identifier)
	}
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.Active || !user.VerifyPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.issueFor(user)
}

func (s *AuthService) issueFor(user *identity.User) (*AuthResponse, error) {
	token, expiresAt, err := s.issuer.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}
