package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"aquabio-be/internal/apperrors"
	"aquabio-be/internal/entities"
	"aquabio-be/internal/jwt"
	"aquabio-be/internal/models"
)

func newAuthService(userRepo *fakeUserRepo) AuthService {
	return NewAuthService(userRepo, jwt.NewJWTService("test-secret-key-0123456789abcdef", time.Hour))
}

func TestRegisterSuccess(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)

	resp, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "Ardi",
		Email:    "A@x.com",
		Password: "secret1",
		FullName: "Ardi",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ardi", resp.User.Username)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.False(t, resp.User.IsAdmin)

	// Stored password is a hash, never the clear text.
	stored, err := userRepo.FindByID(context.Background(), resp.User.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthService(newFakeUserRepo())

	cases := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"blank username", models.RegisterRequest{Email: "a@x.com", Password: "secret1", FullName: "A"}},
		{"blank email", models.RegisterRequest{Username: "ardi", Password: "secret1", FullName: "A"}},
		{"blank password", models.RegisterRequest{Username: "ardi", Email: "a@x.com", FullName: "A"}},
		{"blank full name", models.RegisterRequest{Username: "ardi", Email: "a@x.com", Password: "secret1"}},
		{"short password", models.RegisterRequest{Username: "ardi", Email: "a@x.com", Password: "five5", FullName: "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), &tc.req)
			assert.True(t, errors.Is(err, apperrors.ErrValidation))
		})
	}
}

func TestRegisterConflictCaseInsensitive(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "ardi", Email: "a@x.com", Password: "secret1", FullName: "Ardi",
	})
	require.NoError(t, err)

	// Same username, different email, different case.
	_, err = svc.Register(context.Background(), &models.RegisterRequest{
		Username: "ARDI", Email: "other@x.com", Password: "secret1", FullName: "Ardi",
	})
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	// Same email, different username.
	_, err = svc.Register(context.Background(), &models.RegisterRequest{
		Username: "someone", Email: "A@X.COM", Password: "secret1", FullName: "Ardi",
	})
	assert.True(t, errors.Is(err, apperrors.ErrConflict))

	// No extra record was created.
	users, err := userRepo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLoginCaseInsensitiveUsername(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "ardi", Email: "a@x.com", Password: "secret1", FullName: "Ardi",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &models.LoginRequest{
		Username: "Ardi", Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ardi", resp.User.Username)
}

func TestLoginInvalidCredentials(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)

	_, err := svc.Register(context.Background(), &models.RegisterRequest{
		Username: "ardi", Email: "a@x.com", Password: "secret1", FullName: "Ardi",
	})
	require.NoError(t, err)

	// Unknown username and wrong password produce the same message so
	// the response never reveals which field was wrong.
	_, unknownErr := svc.Login(context.Background(), &models.LoginRequest{Username: "nobody", Password: "secret1"})
	_, wrongErr := svc.Login(context.Background(), &models.LoginRequest{Username: "ardi", Password: "wrong-password"})

	assert.True(t, errors.Is(unknownErr, apperrors.ErrAuth))
	assert.True(t, errors.Is(wrongErr, apperrors.ErrAuth))
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestCurrentUserReadsFromStorage(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)

	user := userRepo.add(&entities.User{Username: "ardi", Email: "a@x.com", FullName: "Ardi"})

	projection, err := svc.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, projection.Username)

	_, err = svc.CurrentUser(context.Background(), 9999)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestListUsersAdminOnly(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newAuthService(userRepo)

	regular := userRepo.add(&entities.User{Username: "ardi", Email: "a@x.com"})
	admin := userRepo.add(&entities.User{Username: "root", Email: "root@x.com", IsAdmin: true})

	_, err := svc.ListUsers(context.Background(), regular.ID)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))

	list, err := svc.ListUsers(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
}
