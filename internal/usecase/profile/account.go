package profile

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/carwash-scheduler/internal/audit"
	"github.com/BruksfildServices01/carwash-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/profile"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	"github.com/BruksfildServices01/carwash-scheduler/internal/validators"
)

const MinPasswordLength = 6

// ======================================================
// SIGN UP
// ======================================================

type SignUpInput struct {
	Email       string
	Password    string
	DisplayName string
	Phone       string
}

type SignUp struct {
	repo           domain.Repository
	audit          *audit.Dispatcher
	bootstrapAdmin string
	checkDomain    func(email string) bool
}

// NewSignUp creates accounts. The account whose e-mail equals
// bootstrapAdmin starts as admin; checkDomain may be nil.
func NewSignUp(
	repo domain.Repository,
	audit *audit.Dispatcher,
	bootstrapAdmin string,
	checkDomain func(email string) bool,
) *SignUp {
	return &SignUp{
		repo:           repo,
		audit:          audit,
		bootstrapAdmin: strings.ToLower(strings.TrimSpace(bootstrapAdmin)),
		checkDomain:    checkDomain,
	}
}

func (uc *SignUp) Execute(ctx context.Context, in SignUpInput) (*models.Profile, error) {
	email, ok := validators.NormalizeEmail(in.Email)
	if !ok {
		return nil, httperr.ErrFields("invalid_email", "email")
	}
	if len(in.Password) < MinPasswordLength {
		return nil, httperr.ErrFields("weak_password", "password")
	}
	if uc.checkDomain != nil && !uc.checkDomain(email) {
		return nil, httperr.ErrFields("invalid_email", "email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := access.RoleCliente
	if uc.bootstrapAdmin != "" && email == uc.bootstrapAdmin {
		role = access.RoleAdmin
	}

	name := strings.TrimSpace(in.DisplayName)
	if name == "" {
		name = email[:strings.Index(email, "@")]
	}

	user := &models.User{Email: email, PasswordHash: string(hashed)}
	p := &models.Profile{
		DisplayName: name,
		Email:       email,
		Role:        string(role),
		Phone:       strings.TrimSpace(in.Phone),
	}

	if err := uc.repo.CreateAccount(ctx, user, p); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &p.ID,
		Action:   "account_created",
		Entity:   "profile",
		EntityID: &p.ID,
		Metadata: map[string]any{"role": p.Role},
	})

	return p, nil
}

// ======================================================
// SIGN IN
// ======================================================

type SignIn struct {
	repo domain.Repository
}

func NewSignIn(repo domain.Repository) *SignIn {
	return &SignIn{repo: repo}
}

// Execute returns the profile of the matching account. Unknown e-mail and
// wrong password are indistinguishable to the caller.
func (uc *SignIn) Execute(ctx context.Context, email, password string) (*models.Profile, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := uc.repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("invalid_credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, httperr.ErrBusiness("invalid_credentials")
	}

	return getProfile(ctx, uc.repo, user.ID)
}

func getProfile(ctx context.Context, repo domain.Repository, id string) (*models.Profile, error) {
	p, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}
	return p, nil
}
