package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbaid4/testwecicada/internal/common"
	"github.com/kbaid4/testwecicada/internal/models"
)

func TestSignup_AndSignIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	u, err := env.svc.Identity.Signup(ctx, SignupInput{
		Name: "Alice", Email: " Alice@X.com ", Password: "pw1", CompanyName: "Acme",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", u.Email)
	assert.Equal(t, models.RoleOrganizer, u.Role)
	assert.NotEqual(t, "pw1", u.PasswordHash)

	token, signedIn, err := env.svc.Identity.SignIn(ctx, "alice@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, signedIn.ID)

	claims, err := env.guard.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "organizer", claims.Role)

	body, err := json.Marshal(signedIn)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "$2a$")
	assert.NotContains(t, string(body), "password")
}

func TestSignup_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   SignupInput
	}{
		{"missing name", SignupInput{Email: "a@x.com", Password: "pw"}},
		{"missing email", SignupInput{Name: "A", Password: "pw"}},
		{"bad email", SignupInput{Name: "A", Email: "not-an-email", Password: "pw"}},
		{"missing password", SignupInput{Name: "A", Email: "a@x.com"}},
		{"unknown role", SignupInput{Name: "A", Email: "a@x.com", Password: "pw", Type: "admin"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Identity.Signup(ctx, tt.in)
			assert.True(t, errors.Is(err, common.ErrBadRequest), "got %v", err)
		})
	}
}

func TestSignup_SupplierRole(t *testing.T) {
	env := newTestEnv(t)
	u, err := env.svc.Identity.Signup(context.Background(), SignupInput{
		Name: "Sam", Email: "sam@x.com", Password: "pw", Type: "supplier", ServiceType: "catering",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSupplier, u.Role)
	assert.Equal(t, "catering", u.ServiceType)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Alice", "alice@x.com")

	_, err := env.svc.Identity.Signup(context.Background(), SignupInput{Name: "Imposter", Email: "ALICE@x.com", Password: "x"})

	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestSignIn_GenericFailure(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Alice", "alice@x.com")
	ctx := context.Background()

	_, _, wrongPw := env.svc.Identity.SignIn(ctx, "alice@x.com", "nope")
	_, _, unknown := env.svc.Identity.SignIn(ctx, "ghost@x.com", "pw1")

	assert.True(t, errors.Is(wrongPw, common.ErrUnauthorized))
	assert.True(t, errors.Is(unknown, common.ErrUnauthorized))
	assert.Equal(t, wrongPw.Error(), unknown.Error())
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.signup(t, "Alice", "alice@x.com")
	env.signup(t, "Bob", "bob@x.com")

	updated, err := env.svc.Identity.UpdateProfile(ctx, alice.ID, ProfileUpdate{
		Name:     ptr("Alice B."),
		Phone:    ptr("555-0100"),
		Password: ptr("pw2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)
	assert.Equal(t, "555-0100", updated.Phone)
	assert.Equal(t, "alice@x.com", updated.Email)

	_, _, err = env.svc.Identity.SignIn(ctx, "alice@x.com", "pw1")
	assert.True(t, errors.Is(err, common.ErrUnauthorized))
	_, _, err = env.svc.Identity.SignIn(ctx, "alice@x.com", "pw2")
	assert.NoError(t, err)

	_, err = env.svc.Identity.UpdateProfile(ctx, alice.ID, ProfileUpdate{Email: ptr("bob@x.com")})
	assert.True(t, errors.Is(err, common.ErrConflict))

	_, err = env.svc.Identity.UpdateProfile(ctx, alice.ID, ProfileUpdate{Name: ptr("  ")})
	assert.True(t, errors.Is(err, common.ErrBadRequest))

	_, err = env.svc.Identity.UpdateProfile(ctx, 999, ProfileUpdate{Name: ptr("x")})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestProfile_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Identity.Profile(context.Background(), 42)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestSignup_PasswordTooLong(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Identity.Signup(ctx, SignupInput{
		Name: "Alice", Email: "alice@x.com", Password: strings.Repeat("p", 80),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrBadRequest))

	_, err = env.svc.Identity.FindByEmail(ctx, "alice@x.com")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, err = env.svc.Identity.Signup(ctx, SignupInput{
		Name: "Alice", Email: "alice@x.com", Password: strings.Repeat("p", 72),
	})
	assert.NoError(t, err)
}

func TestUpdateProfile_PasswordTooLong(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := env.signup(t, "Alice", "alice@x.com")

	_, err := env.svc.Identity.UpdateProfile(ctx, alice.ID, ProfileUpdate{Password: ptr(strings.Repeat("p", 73))})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrBadRequest))

	_, _, err = env.svc.Identity.SignIn(ctx, "alice@x.com", "pw1")
	assert.NoError(t, err)
}
