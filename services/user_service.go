// services/user_service.go - Accounts and profiles
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"rcsinavim/models"
)

type UserService struct {
	users     UserRepository
	validator *Validator
	now       func() time.Time
}

func NewUserService(users UserRepository, validator *Validator) *UserService {
	return &UserService{
		users:     users,
		validator: validator,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// NameKey lowercases a display name with Turkish casing rules so that
// "IŞIK" and "ışık" match each other in search.
func NameKey(name string) string {
	return cases.Lower(language.Turkish).String(strings.TrimSpace(name))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a student account.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	return s.CreateAccount(ctx, in, models.RoleStudent)
}

// CreateAccount creates an account with the given role. Staff accounts are
// only created through the command line tools.
func (s *UserService) CreateAccount(ctx context.Context, in RegisterInput, role models.Role) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	switch role {
	case models.RoleStudent, models.RoleTeacher, models.RoleAdmin:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}

	if _, err := s.users.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:     in.Email,
		Name:      in.Name,
		NameKey:   NameKey(in.Name),
		Password:  string(hashedPassword),
		Role:      role,
		CreatedAt: s.now(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	log.Printf("User %s registered as %s", user.ID, user.Role)
	return user, nil
}

// Login checks the credentials and stamps the last login time.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &now
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUser(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > 100 {
		return fmt.Errorf("%w: name must be between 1 and 100 characters", ErrValidation)
	}
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return err
	}
	return s.users.UpdateName(ctx, userID, name, NameKey(name))
}

// SearchUsers matches the start of a name or an email address, excluding
// the caller. At most limit users are returned.
func (s *UserService) SearchUsers(ctx context.Context, query, currentUserID string, limit int) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.User{}, nil
	}

	// One extra row so dropping the caller still leaves a full page.
	found, err := s.users.SearchUsers(ctx, NameKey(query), normalizeEmail(query), limit+1)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	users := make([]models.User, 0, len(found))
	for _, u := range found {
		if u.ID == currentUserID {
			continue
		}
		users = append(users, u)
		if len(users) == limit {
			break
		}
	}
	return users, nil
}
