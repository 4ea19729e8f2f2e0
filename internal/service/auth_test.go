package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"artgallery-api/internal/domain"
	"artgallery-api/internal/repository"
)

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user domain.User) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
		if u.Username == user.Username {
			return domain.User{}, repository.ErrUsernameExists
		}
	}
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrUserNotFound
}

type fakeTokenRepo struct {
	tokens map[string]uint
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]uint{}}
}

func (f *fakeTokenRepo) Store(_ context.Context, userID uint, tokenHash string, _ time.Time) error {
	f.tokens[tokenHash] = userID
	return nil
}

func (f *fakeTokenRepo) Validate(_ context.Context, tokenHash string) (uint, error) {
	if userID, ok := f.tokens[tokenHash]; ok {
		return userID, nil
	}
	return 0, repository.ErrRefreshTokenInvalid
}

func (f *fakeTokenRepo) Revoke(_ context.Context, tokenHash string) error {
	delete(f.tokens, tokenHash)
	return nil
}

func (f *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID uint) error {
	for hash, id := range f.tokens {
		if id == userID {
			delete(f.tokens, hash)
		}
	}
	return nil
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeTokenRepo) {
	users := newFakeUserRepo()
	tokens := newFakeTokenRepo()
	return NewAuthService(users, tokens), users, tokens
}

func TestAuthService_Signup(t *testing.T) {
	svc, _, _ := newAuthFixture()

	created, err := svc.Signup(context.Background(), domain.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password1",
		Role:     domain.RoleAdmin, // must be ignored
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleVisitor, created.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password1")))
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Signup(context.Background(), domain.User{Username: "alice", Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), domain.User{Username: "alice2", Email: "alice@example.com", Password: "password1"})

	assert.ErrorIs(t, err, ErrUserEmailExists)
}

func TestAuthService_Login(t *testing.T) {
	svc, _, _ := newAuthFixture()

	created, err := svc.Signup(context.Background(), domain.User{Username: "alice", Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), "alice@example.com", "password1")

	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Signup(context.Background(), domain.User{Username: "alice", Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "alice@example.com", "nope")

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, err := svc.Login(context.Background(), "ghost@example.com", "password1")

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	created, err := svc.Signup(ctx, domain.User{Username: "alice", Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)

	raw, err := svc.IssueRefreshToken(ctx, created.ID)
	require.NoError(t, err)

	user, rotated, err := svc.Refresh(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.NotEqual(t, raw, rotated)

	// The old token is gone; the new one works.
	_, _, err = svc.Refresh(ctx, raw)
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)

	_, _, err = svc.Refresh(ctx, rotated)
	assert.NoError(t, err)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	_, _, err := svc.Refresh(context.Background(), "made-up")

	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	created, err := svc.Signup(ctx, domain.User{Username: "alice", Email: "alice@example.com", Password: "password1"})
	require.NoError(t, err)

	raw, err := svc.IssueRefreshToken(ctx, created.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, raw))

	_, _, err = svc.Refresh(ctx, raw)
	assert.ErrorIs(t, err, ErrRefreshTokenInvalid)

	// Logging out with no token is a no-op.
	assert.NoError(t, svc.Logout(ctx, ""))
}
