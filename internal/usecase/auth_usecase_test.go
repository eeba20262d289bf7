package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homerent/internal/domain/entity"
	"homerent/pkg/errors"
)

type fakeAuthClient struct {
	nextUID   string
	createErr error
	signInErr error
	deleted   []string
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.nextUID, nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	return f.nextUID, nil
}

func (f *fakeAuthClient) GenerateToken(ctx context.Context, uid string) (string, error) {
	return "token-" + uid, nil
}

func (f *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, error) {
	if f.signInErr != nil {
		return "", f.signInErr
	}
	return "id-token", nil
}

func (f *fakeAuthClient) SignInWithEmailPasswordWithRefresh(email, password string) (string, string, error) {
	if f.signInErr != nil {
		return "", "", f.signInErr
	}
	return "id-token", "refresh-token", nil
}

func (f *fakeAuthClient) RefreshIdToken(refreshToken string) (string, string, error) {
	if refreshToken != "refresh-token" {
		return "", "", fmt.Errorf("invalid grant")
	}
	return "id-token", "refresh-token", nil
}

func (f *fakeAuthClient) UpdateUserPassword(ctx context.Context, uid, newPassword string) error {
	return nil
}

func (f *fakeAuthClient) DeleteUser(ctx context.Context, uid string) error {
	f.deleted = append(f.deleted, uid)
	return nil
}

func TestRegisterSeedsCoins(t *testing.T) {
	users := newFakeUserRepo()
	auth := &fakeAuthClient{nextUID: "uid-1"}
	uc := NewAuthUseCase(users, auth)

	result, err := uc.Register(context.Background(), RegisterInput{
		Email:    "carol@example.com",
		Password: "secret123",
		Username: "carol",
		Role:     entity.RoleSeller,
	})
	require.NoError(t, err)
	assert.Equal(t, "uid-1", result.User.ID)
	assert.Equal(t, entity.RoleSeller, result.User.Role)
	assert.Equal(t, int64(100), result.User.Coins)
	assert.Equal(t, "token-uid-1", result.Token)

	stored, err := users.GetByID(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), stored.Coins)
}

func TestRegisterValidation(t *testing.T) {
	users := seedUsers()
	uc := NewAuthUseCase(users, &fakeAuthClient{nextUID: "uid-2"})
	ctx := context.Background()

	_, err := uc.Register(ctx, RegisterInput{Email: "x@example.com", Role: "Admin"})
	assert.Equal(t, 400, errors.StatusOf(err))

	_, err = uc.Register(ctx, RegisterInput{Email: "x@example.com", Role: "visitor"})
	assert.Equal(t, 400, errors.StatusOf(err))

	_, err = uc.Register(ctx, RegisterInput{Email: "alice@example.com", Role: entity.RoleBuyer})
	assert.Equal(t, 409, errors.StatusOf(err))
}

func TestLogin(t *testing.T) {
	users := newFakeUserRepo(&entity.User{ID: "uid-1", Email: "carol@example.com"})
	auth := &fakeAuthClient{nextUID: "uid-1"}
	uc := NewAuthUseCase(users, auth)

	result, err := uc.Login(context.Background(), "carol@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "id-token", result.Token)
	assert.Equal(t, "refresh-token", result.RefreshToken)
	assert.Equal(t, "uid-1", result.User.ID)

	auth.signInErr = fmt.Errorf("wrong password")
	_, err = uc.Login(context.Background(), "carol@example.com", "nope")
	assert.Equal(t, 401, errors.StatusOf(err))
}

func TestRefresh(t *testing.T) {
	users := newFakeUserRepo(&entity.User{ID: "uid-1", Email: "carol@example.com"})
	uc := NewAuthUseCase(users, &fakeAuthClient{nextUID: "uid-1"})

	result, err := uc.Refresh(context.Background(), "refresh-token")
	require.NoError(t, err)
	assert.Equal(t, "id-token", result.Token)

	_, err = uc.Refresh(context.Background(), "stale")
	assert.Equal(t, 401, errors.StatusOf(err))
}
