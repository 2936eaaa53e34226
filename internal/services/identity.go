package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kbaid4/testwecicada/internal/auth"
	"github.com/kbaid4/testwecicada/internal/common"
	"github.com/kbaid4/testwecicada/internal/logging"
	"github.com/kbaid4/testwecicada/internal/models"
	"github.com/kbaid4/testwecicada/internal/repository"
)

type SignupInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Type        string `json:"type"`
	CompanyName string `json:"companyName"`
	EventType   string `json:"eventType"`
	ServiceType string `json:"serviceType"`
	Address     string `json:"address"`
	TaxID       string `json:"taxId"`
	Phone       string `json:"phone"`
}

// ProfileUpdate carries a partial profile. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Password    *string `json:"password"`
	CompanyName *string `json:"companyName"`
	EventType   *string `json:"eventType"`
	ServiceType *string `json:"serviceType"`
	Address     *string `json:"address"`
	TaxID       *string `json:"taxId"`
	Phone       *string `json:"phone"`
}

type IdentityService struct {
	users repository.UserRepository
	guard *auth.Guard
	log   logging.Logger
}

func NewIdentityService(m repository.Manager, guard *auth.Guard, log logging.Logger) *IdentityService {
	return &IdentityService{users: m.Users(), guard: guard, log: log}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}

// Signup registers a new identity and returns it with the hash stripped.
func (s *IdentityService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	if err := required("email", email); err != nil {
		return nil, err
	}
	if !validEmail(email) {
		return nil, fmt.Errorf("%w: invalid email", common.ErrBadRequest)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", common.ErrBadRequest)
	}
	if err := passwordFits(in.Password); err != nil {
		return nil, err
	}
	role, err := models.ParseRole(in.Type)
	if err != nil {
		return nil, err
	}

	// The unique index still guards the race between this check and the insert.
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CompanyName:  in.CompanyName,
		EventType:    in.EventType,
		ServiceType:  in.ServiceType,
		Address:      in.Address,
		TaxID:        in.TaxID,
		Phone:        in.Phone,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, fmt.Errorf("%w: email already registered", common.ErrConflict)
		}
		return nil, err
	}
	s.log.Info(ctx, "user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// SignIn returns a bearer token for valid credentials. Unknown email and
// wrong password produce the same error.
func (s *IdentityService) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", common.ErrUnauthorized)
		}
		return "", nil, err
	}
	if !s.VerifyCredential(password, u.PasswordHash) {
		return "", nil, fmt.Errorf("%w: invalid credentials", common.ErrUnauthorized)
	}

	token, err := s.guard.Issue(u.ID, string(u.Role))
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

func (s *IdentityService) VerifyCredential(raw, hash string) bool {
	return auth.CheckPassword(raw, hash)
}

func (s *IdentityService) Profile(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *IdentityService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, normalizeEmail(email))
}

// UpdateProfile merges the supplied fields. A new password is re-hashed;
// a new email must still be unique.
func (s *IdentityService) UpdateProfile(ctx context.Context, id uint, in ProfileUpdate) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if err := required("name", *in.Name); err != nil {
			return nil, err
		}
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if !validEmail(email) {
			return nil, fmt.Errorf("%w: invalid email", common.ErrBadRequest)
		}
		if email != u.Email {
			if other, err := s.users.FindByEmail(ctx, email); err == nil && other.ID != u.ID {
				return nil, fmt.Errorf("%w: email already registered", common.ErrConflict)
			} else if err != nil && !errors.Is(err, common.ErrNotFound) {
				return nil, err
			}
			u.Email = email
		}
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("%w: password must not be empty", common.ErrBadRequest)
		}
		if err := passwordFits(*in.Password); err != nil {
			return nil, err
		}
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}
	setString(&u.CompanyName, in.CompanyName)
	setString(&u.EventType, in.EventType)
	setString(&u.ServiceType, in.ServiceType)
	setString(&u.Address, in.Address)
	setString(&u.TaxID, in.TaxID)
	setString(&u.Phone, in.Phone)

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// passwordFits rejects passwords bcrypt cannot hash.
func passwordFits(pw string) error {
	if len(pw) > auth.MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrBadRequest, auth.MaxPasswordBytes)
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
