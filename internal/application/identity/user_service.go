package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmalink/backend/internal/domain/identity"
	"github.com/pharmalink/backend/internal/domain/shared"
)

// UserService handles user administration
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID retrieves a user's public profile
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// List retrieves users with pagination
func (s *UserService) List(ctx context.Context, page, pageSize int) (shared.Paginated[UserResponse], error) {
	f := shared.DefaultFilter()
	if page > 0 {
		f.Page = page
	}
	if pageSize > 0 {
		f.PageSize = pageSize
	}

	users, err := s.userRepo.FindAll(ctx, f)
	if err != nil {
		return shared.Paginated[UserResponse]{}, err
	}
	total, err := s.userRepo.Count(ctx, f)
	if err != nil {
		return shared.Paginated[UserResponse]{}, err
	}

	items := make([]UserResponse, 0, len(users))
	for i := range users {
		items = append(items, ToUserResponse(&users[i]))
	}
	return shared.NewPaginated(items, total, f.Page, f.PageSize), nil
}

// Deactivate blocks a user from logging in
func (s *UserService) Deactivate(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user.Deactivate()
	return s.userRepo.Save(ctx, user)
}
