package profile

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/carwash-scheduler/internal/audit"
	"github.com/BruksfildServices01/carwash-scheduler/internal/domain/access"
	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/profile"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
	"github.com/BruksfildServices01/carwash-scheduler/internal/storage"
)

// ======================================================
// LIST
// ======================================================

type ListUsers struct {
	repo domain.Repository
}

func NewListUsers(repo domain.Repository) *ListUsers {
	return &ListUsers{repo: repo}
}

func (uc *ListUsers) Execute(ctx context.Context, f domain.ListFilter) ([]models.Profile, error) {
	if f.Role != "" {
		role, err := access.ParseRole(f.Role)
		if err != nil {
			return nil, err
		}
		f.Role = string(role)
	}
	return uc.repo.List(ctx, f)
}

// ======================================================
// EDIT (role, plan, drafts)
// ======================================================

type EditUsers struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewEditUsers(repo domain.Repository, audit *audit.Dispatcher) *EditUsers {
	return &EditUsers{repo: repo, audit: audit}
}

// ChangeRole is admin only. Admins cannot change their own role, so the
// last admin cannot lock everyone out by accident.
func (uc *EditUsers) ChangeRole(ctx context.Context, actorID, userID, role string) (*models.Profile, error) {
	if actorID == userID {
		return nil, httperr.ErrBusiness("forbidden")
	}
	return uc.apply(ctx, actorID, "role_changed", userID, domain.Patch{Role: &role})
}

// AssignPlan sets or, with nil, clears the plan of a user.
func (uc *EditUsers) AssignPlan(ctx context.Context, actorID, userID string, planID *string) (*models.Profile, error) {
	id := ""
	if planID != nil {
		id = *planID
	}
	return uc.apply(ctx, actorID, "plan_assigned", userID, domain.Patch{PlanID: &id})
}

// SaveDrafts applies every pending edit of the admin table at once.
func (uc *EditUsers) SaveDrafts(ctx context.Context, actorID string, drafts map[string]domain.Patch) ([]models.Profile, error) {
	if len(drafts) == 0 {
		return []models.Profile{}, nil
	}
	if d, ok := drafts[actorID]; ok && d.Role != nil {
		return nil, httperr.ErrBusiness("forbidden")
	}

	out, err := uc.repo.ApplyPatches(ctx, drafts)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actorID),
		Action:   "users_bulk_edited",
		Entity:   "profile",
		Metadata: map[string]any{"count": len(out)},
	})
	return out, nil
}

func (uc *EditUsers) apply(
	ctx context.Context,
	actorID, action, userID string,
	patch domain.Patch,
) (*models.Profile, error) {

	out, err := uc.repo.ApplyPatches(ctx, map[string]domain.Patch{userID: patch})
	if err != nil {
		return nil, err
	}

	p := out[0]
	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actorID),
		Action:   action,
		Entity:   "profile",
		EntityID: &p.ID,
		Metadata: patch,
	})
	return &p, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteUser struct {
	repo  domain.Repository
	files storage.ObjectStore
	audit *audit.Dispatcher
}

func NewDeleteUser(repo domain.Repository, files storage.ObjectStore, audit *audit.Dispatcher) *DeleteUser {
	return &DeleteUser{repo: repo, files: files, audit: audit}
}

// Execute removes the account and profile. Reservations keep their
// customer data.
func (uc *DeleteUser) Execute(ctx context.Context, actorID, userID string) error {
	if actorID == userID {
		return httperr.ErrBusiness("forbidden")
	}

	p, err := getProfile(ctx, uc.repo, userID)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteAccount(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("user_not_found")
		}
		return err
	}

	if uc.files != nil && p.AvatarKey != "" {
		if err := uc.files.Delete(ctx, p.AvatarKey); err != nil {
			log.Printf("failed to delete avatar of %s: %v", userID, err)
		}
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  audit.Ref(actorID),
		Action:   "user_deleted",
		Entity:   "profile",
		EntityID: &userID,
		Metadata: map[string]any{"email": p.Email},
	})
	return nil
}
