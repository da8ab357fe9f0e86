package repository

import (
	"context"
	"time"

	"github.com/aventcrm/relance/internal/followup/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, followUp *domain.FollowUp) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO follow_ups (id, customer_id, target_date, kind, priority, status, notes, created_at, completed_at, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		followUp.ID,
		followUp.CustomerID,
		followUp.TargetDate,
		followUp.Kind,
		followUp.Priority,
		followUp.Status,
		followUp.Notes,
		followUp.CreatedAt,
		followUp.CompletedAt,
		followUp.Outcome,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.FollowUp, error) {
	var followUp domain.FollowUp
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, target_date, kind, priority, status, notes, created_at, completed_at, outcome
		 FROM follow_ups WHERE id = ?`,
		id,
	).Scan(&followUp).Error
	if err != nil {
		return nil, err
	}
	if followUp.ID == 0 {
		return nil, nil
	}
	return &followUp, nil
}

const joinedColumns = `f.id, f.customer_id, f.target_date, f.kind, f.priority, f.status, f.notes,
	 f.created_at, f.completed_at, f.outcome, c.name AS customer_name`

func (r *repo) ListDueOn(ctx context.Context, db *gorm.DB, day time.Time) ([]*domain.FollowUpWithCustomer, error) {
	var items []*domain.FollowUpWithCustomer
	err := db.WithContext(ctx).Raw(
		`SELECT `+joinedColumns+`
		 FROM follow_ups f
		 JOIN customers c ON f.customer_id = c.id
		 WHERE f.target_date = ? AND f.status = ?
		 ORDER BY f.id ASC`,
		day, domain.StatusScheduled,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListBefore(ctx context.Context, db *gorm.DB, day time.Time) ([]*domain.FollowUpWithCustomer, error) {
	var items []*domain.FollowUpWithCustomer
	err := db.WithContext(ctx).Raw(
		`SELECT `+joinedColumns+`
		 FROM follow_ups f
		 JOIN customers c ON f.customer_id = c.id
		 WHERE f.target_date < ? AND f.status = ?
		 ORDER BY f.target_date ASC, f.id ASC`,
		day, domain.StatusScheduled,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListBetween(ctx context.Context, db *gorm.DB, from, to time.Time) ([]*domain.FollowUpWithCustomer, error) {
	var items []*domain.FollowUpWithCustomer
	err := db.WithContext(ctx).Raw(
		`SELECT `+joinedColumns+`
		 FROM follow_ups f
		 JOIN customers c ON f.customer_id = c.id
		 WHERE f.target_date BETWEEN ? AND ? AND f.status = ?
		 ORDER BY f.target_date ASC, f.id ASC`,
		from, to, domain.StatusScheduled,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Complete(ctx context.Context, db *gorm.DB, id snowflake.ID, completedAt time.Time, outcome, notes string) error {
	result := db.WithContext(ctx).
		Model(&domain.FollowUp{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       domain.StatusDone,
			"completed_at": completedAt,
			"outcome":      outcome,
			"notes":        notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repo) ListForCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]*domain.FollowUp, error) {
	var items []*domain.FollowUp
	err := db.WithContext(ctx).
		Model(&domain.FollowUp{}).
		Where("customer_id = ?", customerID).
		Order("target_date desc, id desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
