package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"edutrade/internal/logger"
	"edutrade/internal/models"
	"edutrade/internal/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// Mock repository (stub)
type mockUserRepo struct {
	users    map[uuid.UUID]*models.User
	lastUser *models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (m *mockUserRepo) IsEmailTaken(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *models.User) error {
	user.ID = uuid.New()
	m.users[user.ID] = user
	m.lastUser = user
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, id uuid.UUID, input *models.UpdateProfileRequest) error {
	u, ok := m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if input.Name != nil {
		u.Name = *input.Name
	}
	if input.Phone != nil {
		u.Phone = *input.Phone
	}
	return nil
}

func (m *mockUserRepo) add(user *models.User) *models.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return user
}

func TestRegisterUser(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	user := &models.User{
		Name:  "Test Student",
		Email: "test@example.com",
	}

	err := service.RegisterUser(context.Background(), user, "secret123")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if repo.lastUser == nil || repo.lastUser.PasswordHash == "" {
		t.Fatal("password was not hashed or user was not saved")
	}
	if repo.lastUser.PasswordHash == "secret123" {
		t.Fatal("password stored in plain text")
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	repo.add(&models.User{Name: "First", Email: "taken@example.com"})

	err := service.RegisterUser(context.Background(), &models.User{
		Name:  "Second",
		Email: "taken@example.com",
	}, "secret123")

	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginUser_Success(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret123")
	repo.add(&models.User{
		Name:         "Test Student",
		Email:        "test@example.com",
		PasswordHash: hashed,
	})

	token, user, err := service.LoginUser(context.Background(), "test@example.com", "secret123", "mysecret", 15*time.Minute)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if token == "" {
		t.Fatal("no access token was generated")
	}
	if user == nil || user.Email != "test@example.com" {
		t.Fatal("logged-in user was not returned")
	}
}

func TestLoginUser_WrongPassword(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	hashed, _ := utils.HashPassword("secret123")
	repo.add(&models.User{Email: "test@example.com", PasswordHash: hashed})

	_, _, err := service.LoginUser(context.Background(), "test@example.com", "wrong", "mysecret", time.Minute)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUser_UnknownEmail(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	_, _, err := service.LoginUser(context.Background(), "nobody@example.com", "pass", "secret", time.Minute)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	repo := newMockUserRepo()
	service := NewAuthService(repo)

	u := repo.add(&models.User{Name: "Old Name", Email: "test@example.com", Phone: "111"})

	name := "New Name"
	updated, err := service.UpdateProfile(context.Background(), u.ID, &models.UpdateProfileRequest{Name: &name})
	if err != nil {
		t.Fatalf("profile update failed: %v", err)
	}

	if updated.Name != "New Name" {
		t.Fatalf("name was not updated, got %q", updated.Name)
	}
	if updated.Phone != "111" {
		t.Fatalf("phone should be untouched, got %q", updated.Phone)
	}
}
