package profile

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/carwash-scheduler/internal/domain/loyalty"
	planDomain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/plan"
	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/profile"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/imaging"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	"github.com/BruksfildServices01/carwash-scheduler/internal/storage"
)

type MeView struct {
	models.Profile
	AvatarURL string       `json:"avatar_url,omitempty"`
	Plan      *models.Plan `json:"plan"`
	Card      loyalty.Card `json:"stamps_card"`
}

// ======================================================
// GET ME
// ======================================================

type GetMe struct {
	repo  domain.Repository
	plans planDomain.Repository
	files storage.ObjectStore
}

// NewGetMe accepts a nil files store; avatars are then left out.
func NewGetMe(repo domain.Repository, plans planDomain.Repository, files storage.ObjectStore) *GetMe {
	return &GetMe{repo: repo, plans: plans, files: files}
}

func (uc *GetMe) Execute(ctx context.Context, userID string) (*MeView, error) {
	p, err := getProfile(ctx, uc.repo, userID)
	if err != nil {
		return nil, err
	}
	return uc.view(ctx, p)
}

func (uc *GetMe) view(ctx context.Context, p *models.Profile) (*MeView, error) {
	plan, err := activePlan(ctx, uc.plans, p)
	if err != nil {
		return nil, err
	}
	out := &MeView{Profile: *p, Plan: plan, Card: loyalty.CardFor(p.Stamps)}

	if uc.files != nil && p.AvatarKey != "" {
		url, err := uc.files.PresignGet(ctx, p.AvatarKey)
		if err != nil {
			log.Printf("avatar url for %s: %v", p.ID, err)
		}
		out.AvatarURL = url
	}

	return out, nil
}

// activePlan resolves the profile's plan. A plan deleted after assignment
// reads as no plan.
func activePlan(ctx context.Context, plans planDomain.Repository, p *models.Profile) (*models.Plan, error) {
	if p.PlanID == nil {
		return nil, nil
	}
	plan, err := plans.Get(ctx, *p.PlanID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// ======================================================
// GET ACCOUNT
// ======================================================

// Account is the caller's profile and live plan, without the storage
// lookups GetMe makes.
type Account struct {
	Profile *models.Profile
	Plan    *models.Plan
}

type GetAccount struct {
	repo  domain.Repository
	plans planDomain.Repository
}

func NewGetAccount(repo domain.Repository, plans planDomain.Repository) *GetAccount {
	return &GetAccount{repo: repo, plans: plans}
}

func (uc *GetAccount) Execute(ctx context.Context, userID string) (*Account, error) {
	p, err := getProfile(ctx, uc.repo, userID)
	if err != nil {
		return nil, err
	}
	plan, err := activePlan(ctx, uc.plans, p)
	if err != nil {
		return nil, err
	}
	return &Account{Profile: p, Plan: plan}, nil
}

// ======================================================
// UPDATE ME
// ======================================================

type UpdateMe struct {
	repo domain.Repository
	me   *GetMe
}

func NewUpdateMe(repo domain.Repository, me *GetMe) *UpdateMe {
	return &UpdateMe{repo: repo, me: me}
}

func (uc *UpdateMe) Execute(ctx context.Context, userID string, in domain.SelfUpdate) (*MeView, error) {
	p, err := getProfile(ctx, uc.repo, userID)
	if err != nil {
		return nil, err
	}

	in.Apply(p)

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.me.view(ctx, p)
}

// ======================================================
// AVATAR
// ======================================================

type UploadAvatar struct {
	repo  domain.Repository
	files storage.ObjectStore
	me    *GetMe
}

func NewUploadAvatar(repo domain.Repository, files storage.ObjectStore, me *GetMe) *UploadAvatar {
	return &UploadAvatar{repo: repo, files: files, me: me}
}

func (uc *UploadAvatar) Execute(ctx context.Context, userID string, raw []byte) (*MeView, error) {
	if uc.files == nil {
		return nil, httperr.ErrBusiness("storage_unavailable")
	}

	p, err := getProfile(ctx, uc.repo, userID)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Avatar(raw)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%s.webp", p.ID, uuid.NewString())
	if err := uc.files.Put(ctx, key, imaging.ContentType, img); err != nil {
		return nil, err
	}

	previous := p.AvatarKey
	p.AvatarKey = key
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if previous != "" {
		if err := uc.files.Delete(ctx, previous); err != nil {
			log.Printf("failed to delete old avatar %s: %v", previous, err)
		}
	}

	return uc.me.view(ctx, p)
}

// ======================================================
// STAMPS CARD
// ======================================================

type GetStamps struct {
	repo domain.Repository
}

func NewGetStamps(repo domain.Repository) *GetStamps {
	return &GetStamps{repo: repo}
}

func (uc *GetStamps) Execute(ctx context.Context, userID string) (loyalty.Card, error) {
	p, err := getProfile(ctx, uc.repo, userID)
	if err != nil {
		return loyalty.Card{}, err
	}
	return loyalty.CardFor(p.Stamps), nil
}
