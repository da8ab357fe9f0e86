package repository

import (
	"context"

	"github.com/aventcrm/relance/internal/audit/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.AuditEntry) error {
	if entry == nil {
		return nil
	}
	return db.WithContext(ctx).Exec(
		`INSERT INTO audit_entries (id, customer_id, agent_id, action, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.CustomerID,
		entry.AgentID,
		entry.Action,
		entry.Detail,
		entry.CreatedAt,
	).Error
}

func (r *repo) ListForCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]*domain.EntryWithAgent, error) {
	var entries []*domain.EntryWithAgent
	err := db.WithContext(ctx).Raw(
		`SELECT e.id, e.customer_id, e.agent_id, e.action, e.detail, e.created_at, a.name AS agent_name
		 FROM audit_entries e
		 LEFT JOIN agents a ON e.agent_id = a.id
		 WHERE e.customer_id = ?
		 ORDER BY e.created_at DESC, e.id DESC`,
		customerID,
	).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
