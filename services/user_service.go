package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stridefoot/footwear-erp-api/errs"
	"github.com/stridefoot/footwear-erp-api/logger"
	"github.com/stridefoot/footwear-erp-api/models"
	"github.com/stridefoot/footwear-erp-api/repository"
)

var validate = validator.New()

// NewUser is the input for provisioning a team member
type NewUser struct {
	Email     string
	FirstName string
	LastName  string
	Role      string
}

// UserService provisions team members. After creation only the role changes.
type UserService struct {
	store    *repository.Store
	identity IdentityProvider
	log      *logger.Logger
}

// NewUserService creates the service; identity may be nil when no identity
// provider is configured
func NewUserService(store *repository.Store, identity IdentityProvider, log *logger.Logger) *UserService {
	return &UserService{
		store:    store,
		identity: identity,
		log:      log.With("service", "UserService"),
	}
}

func (s *UserService) CreateUser(ctx context.Context, in NewUser) (*models.User, error) {
	user, err := newUserModel(in)
	if err != nil {
		return nil, err
	}
	if err := s.store.Users().Insert(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("User created", "user_id", user.ID, "role", user.Role)
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.store.Users().Get(ctx, id)
}

// ChangeRole assigns a new role to a user
func (s *UserService) ChangeRole(ctx context.Context, id, role string) (*models.User, error) {
	parsed, err := models.ParseUserRole(role)
	if err != nil || role == "" {
		return nil, errs.NewValidationError("role", fmt.Sprintf("role must be one of %s", roleList()))
	}
	if err := s.store.Users().Update(ctx, id, map[string]interface{}{"role": parsed}); err != nil {
		return nil, err
	}
	return s.store.Users().Get(ctx, id)
}

// GetBySubject returns the user registered for an identity provider subject
func (s *UserService) GetBySubject(ctx context.Context, subject string) (*models.User, error) {
	return s.store.Users().GetByExternalID(ctx, subject)
}

// RegisterIdentity creates the user for an authenticated caller from the
// identity provider's profile. Registering twice returns the existing user.
func (s *UserService) RegisterIdentity(ctx context.Context, subject, accessToken, role string) (*models.User, error) {
	if s.identity == nil {
		return nil, errs.NewValidationError("identity", "no identity provider is configured")
	}

	existing, err := s.store.Users().GetByExternalID(ctx, subject)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	profile, err := s.identity.GetUserInfo(ctx, accessToken)
	if err != nil {
		s.log.Error("Failed to fetch identity profile", "error", err)
		return nil, errs.NewStorageError("fetch identity profile", err)
	}

	firstName, lastName := profile.GivenName, profile.FamilyName
	if firstName == "" && lastName == "" {
		firstName, lastName = splitName(profile.Name)
	}

	user, err := newUserModel(NewUser{Email: profile.Email, FirstName: firstName, LastName: lastName, Role: role})
	if err != nil {
		return nil, err
	}
	user.ExternalID = &subject

	if err := s.store.Users().Insert(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("User registered from identity provider", "user_id", user.ID)
	return user, nil
}

func newUserModel(in NewUser) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, errs.NewValidationError("email", "email is required")
	}
	if err := validate.Var(email, "email"); err != nil {
		return nil, errs.NewValidationError("email", fmt.Sprintf("invalid email %q", in.Email))
	}

	role, err := models.ParseUserRole(in.Role)
	if err != nil {
		return nil, errs.NewValidationError("role", fmt.Sprintf("role must be one of %s", roleList()))
	}

	return &models.User{
		Email:     email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Role:      role,
	}, nil
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

func roleList() string {
	roles := make([]string, 0, len(models.AllUserRoles()))
	for _, r := range models.AllUserRoles() {
		roles = append(roles, string(r))
	}
	return strings.Join(roles, ", ")
}
