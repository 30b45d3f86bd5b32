package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row does not exist for the user.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an id belongs to another user.
	ErrConflict = errors.New("id already in use")
)

// Repo is the backend storage, scoped by user id on every call.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *Repo) GetProfile(ctx context.Context, userID uuid.UUID) (Profile, error) {
	var p Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return Profile{}, notFound(err)
	}
	return p, nil
}

// UpsertProfile replaces the user's profile, creating it on first use.
func (r *Repo) UpsertProfile(ctx context.Context, userID uuid.UUID, p Profile) (Profile, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Profile
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			p.ID = uuid.Nil
		case err != nil:
			return err
		default:
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
		}
		p.UserID = userID
		return tx.Save(&p).Error
	})
	if err != nil {
		return Profile{}, fmt.Errorf("upsert profile: %w", err)
	}
	return p, nil
}

// ListTransactions returns the user's transactions, newest first.
func (r *Repo) ListTransactions(ctx context.Context, userID uuid.UUID) ([]Transaction, error) {
	var out []Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// CreateTransaction inserts t. When t.ID already exists for the user the
// stored row is returned with created false.
func (r *Repo) CreateTransaction(ctx context.Context, userID uuid.UUID, t Transaction) (Transaction, bool, error) {
	t.UserID = userID
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if t.ID != uuid.Nil {
			var existing Transaction
			err := tx.Where("id = ?", t.ID).First(&existing).Error
			switch {
			case err == nil && existing.UserID != userID:
				return ErrConflict
			case err == nil:
				t = existing
				return nil
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}
		created = true
		return tx.Create(&t).Error
	})
	if err != nil {
		return Transaction{}, false, err
	}
	return t, created, nil
}

func (r *Repo) DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Transaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListGoals returns the user's goals, newest first.
func (r *Repo) ListGoals(ctx context.Context, userID uuid.UUID) ([]Goal, error) {
	var out []Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

// CreateGoal inserts g, returning the stored row with created false when the
// id already exists for the user.
func (r *Repo) CreateGoal(ctx context.Context, userID uuid.UUID, g Goal) (Goal, bool, error) {
	g.UserID = userID
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if g.ID != uuid.Nil {
			var existing Goal
			err := tx.Where("id = ?", g.ID).First(&existing).Error
			switch {
			case err == nil && existing.UserID != userID:
				return ErrConflict
			case err == nil:
				g = existing
				return nil
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}
		created = true
		return tx.Create(&g).Error
	})
	if err != nil {
		return Goal{}, false, err
	}
	return g, created, nil
}

// UpdateGoal loads the goal, applies fn and saves it.
func (r *Repo) UpdateGoal(ctx context.Context, userID, id uuid.UUID, fn func(*Goal)) (Goal, error) {
	var g Goal
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&g).Error; err != nil {
			return notFound(err)
		}
		fn(&g)
		g.ID, g.UserID = id, userID
		return tx.Save(&g).Error
	})
	if err != nil {
		return Goal{}, err
	}
	return g, nil
}

func (r *Repo) DeleteGoal(ctx context.Context, userID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&Goal{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
