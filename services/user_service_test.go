package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/logger"
	"github.com/stridefoot/footwear-erp-api/models"
)

// fakeIdentity returns a canned profile and counts lookups
type fakeIdentity struct {
	profile *IdentityProfile
	err     error
	calls   int
}

func (f *fakeIdentity) GetUserInfo(context.Context, string) (*IdentityProfile, error) {
	f.calls++
	return f.profile, f.err
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.store, nil, logger.NewNop())
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, NewUser{Email: " Ana@Stridefoot.example ", FirstName: "Ana", LastName: "Silva", Role: "qc_team"})
	require.NoError(t, err)
	assert.Equal(t, "ana@stridefoot.example", user.Email)
	assert.Equal(t, models.RoleQCTeam, user.Role)

	defaulted, err := svc.CreateUser(ctx, NewUser{Email: "ben@stridefoot.example"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleMerchandiser, defaulted.Role)

	_, err = svc.CreateUser(ctx, NewUser{Email: "ana@stridefoot.example"})
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestCreateUser_EmailIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.store, nil, logger.NewNop())
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, NewUser{Email: "bob@example.com"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, NewUser{Email: "BOB@Example.COM"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	_, err = svc.CreateUser(ctx, NewUser{Email: "Bob <bob@example.com>"})
	assert.ErrorIs(t, err, errs.ErrValidation)

	var count int64
	require.NoError(t, env.store.DB().Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateUser_Validation(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.store, nil, logger.NewNop())

	tests := []struct {
		name  string
		input NewUser
		field string
	}{
		{"missing email", NewUser{}, "email"},
		{"malformed email", NewUser{Email: "not-an-email"}, "email"},
		{"display name form", NewUser{Email: "Bob <bob@example.com>"}, "email"},
		{"trailing comment", NewUser{Email: "bob@example.com (Bob)"}, "email"},
		{"unknown role", NewUser{Email: "a@b.example", Role: "admin"}, "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(context.Background(), tt.input)
			var validationErr *errs.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestChangeRole(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.store, nil, logger.NewNop())
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, NewUser{Email: "ana@stridefoot.example"})
	require.NoError(t, err)

	updated, err := svc.ChangeRole(ctx, user.ID, "management")
	require.NoError(t, err)
	assert.Equal(t, models.RoleManagement, updated.Role)
	assert.Equal(t, user.Email, updated.Email)

	_, err = svc.ChangeRole(ctx, user.ID, "")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.ChangeRole(ctx, user.ID, "owner")
	assert.ErrorIs(t, err, errs.ErrValidation)

	_, err = svc.ChangeRole(ctx, "missing", "management")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestRegisterIdentity(t *testing.T) {
	env := newTestEnv(t)
	identity := &fakeIdentity{profile: &IdentityProfile{Subject: "auth0|123", Email: "Cara@Stridefoot.example", Name: "Cara de la Cruz"}}
	svc := NewUserService(env.store, identity, logger.NewNop())
	ctx := context.Background()

	user, err := svc.RegisterIdentity(ctx, "auth0|123", "token", "factory_team")
	require.NoError(t, err)
	assert.Equal(t, "cara@stridefoot.example", user.Email)
	assert.Equal(t, "Cara", user.FirstName)
	assert.Equal(t, "de la Cruz", user.LastName)
	assert.Equal(t, models.RoleFactoryTeam, user.Role)
	require.NotNil(t, user.ExternalID)
	assert.Equal(t, "auth0|123", *user.ExternalID)

	again, err := svc.RegisterIdentity(ctx, "auth0|123", "token", "")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, 1, identity.calls, "existing registrations skip the identity provider")

	found, err := svc.GetBySubject(ctx, "auth0|123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestRegisterIdentity_Failures(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := NewUserService(env.store, nil, logger.NewNop()).RegisterIdentity(ctx, "auth0|1", "token", "")
	assert.ErrorIs(t, err, errs.ErrValidation)

	failing := &fakeIdentity{err: errors.New("401 unauthorized")}
	_, err = NewUserService(env.store, failing, logger.NewNop()).RegisterIdentity(ctx, "auth0|1", "token", "")
	assert.ErrorIs(t, err, errs.ErrStorage)

	_, err = NewUserService(env.store, nil, logger.NewNop()).GetBySubject(ctx, "auth0|1")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		input, first, last string
	}{
		{"", "", ""},
		{"Ana", "Ana", ""},
		{"Ana Maria Silva", "Ana", "Maria Silva"},
	}
	for _, tt := range tests {
		first, last := splitName(tt.input)
		assert.Equal(t, tt.first, first)
		assert.Equal(t, tt.last, last)
	}
}
