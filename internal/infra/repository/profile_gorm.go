package repository

import (
	"context"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/carwash-scheduler/internal/domain/loyalty"
	domain "github.com/BruksfildServices01/carwash-scheduler/internal/domain/profile"
	"github.com/BruksfildServices01/carwash-scheduler/internal/httperr"
	"github.com/BruksfildServices01/carwash-scheduler/internal/models"
)

type ProfileGormRepository struct {
	db *gorm.DB
}

func NewProfileGormRepository(db *gorm.DB) *ProfileGormRepository {
	return &ProfileGormRepository{db: db}
}

// --------------------------------------------------
// Identity
// --------------------------------------------------

func (r *ProfileGormRepository) CreateAccount(
	ctx context.Context,
	u *models.User,
	p *models.Profile,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness("email_taken")
			}
			return err
		}
		p.ID = u.ID
		return tx.Create(p).Error
	})
}

func (r *ProfileGormRepository) FindUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *ProfileGormRepository) DeleteAccount(
	ctx context.Context,
	id string,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// --------------------------------------------------
// Profile
// --------------------------------------------------

func (r *ProfileGormRepository) Get(
	ctx context.Context,
	id string,
) (*models.Profile, error) {

	var p models.Profile
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Profile, error) {

	q := r.db.WithContext(ctx).Model(&models.Profile{})

	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}

	if query := strings.ToLower(strings.TrimSpace(f.Query)); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(display_name) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var ps []models.Profile
	if err := q.Order("created_at DESC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *ProfileGormRepository) Update(
	ctx context.Context,
	p *models.Profile,
) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// --------------------------------------------------
// Stamps
// --------------------------------------------------

func (r *ProfileGormRepository) AdjustStamps(
	ctx context.Context,
	id string,
	delta int,
) (int, error) {

	var total int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockProfile(tx, id)
		if err != nil {
			return err
		}

		next, err := loyalty.Apply(p.Stamps, delta)
		if err != nil {
			return err
		}

		if err := tx.Model(p).Update("stamps", next).Error; err != nil {
			return err
		}
		total = next
		return nil
	})
	return total, err
}

func (r *ProfileGormRepository) RecordVisit(
	ctx context.Context,
	id string,
	res *models.Reservation,
) (int, error) {

	var total int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := lockProfile(tx, id)
		if err != nil {
			return err
		}

		if err := tx.Create(res).Error; err != nil {
			return slotError(err)
		}

		next, err := loyalty.Apply(p.Stamps, 1)
		if err != nil {
			return err
		}
		if err := tx.Model(p).Update("stamps", next).Error; err != nil {
			return err
		}
		total = next
		return nil
	})
	return total, err
}

// --------------------------------------------------
// Drafts
// --------------------------------------------------

func (r *ProfileGormRepository) ApplyPatches(
	ctx context.Context,
	patches map[string]domain.Patch,
) ([]models.Profile, error) {

	ids := make([]string, 0, len(patches))
	for id := range patches {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]models.Profile, 0, len(ids))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		planExists := func(planID string) (bool, error) {
			var n int64
			err := tx.Model(&models.Plan{}).Where("id = ?", planID).Count(&n).Error
			return n > 0, err
		}

		for _, id := range ids {
			p, err := lockProfile(tx, id)
			if err != nil {
				return err
			}
			if err := patches[id].Apply(p, planExists); err != nil {
				return err
			}
			if err := tx.Save(p).Error; err != nil {
				return err
			}
			out = append(out, *p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func lockProfile(tx *gorm.DB, id string) (*models.Profile, error) {
	var p models.Profile
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrFields("user_not_found", id)
		}
		return nil, err
	}
	return &p, nil
}

// Compile-time check
var _ domain.Repository = (*ProfileGormRepository)(nil)
