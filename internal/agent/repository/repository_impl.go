package repository

import (
	"context"

	"github.com/aventcrm/relance/internal/agent/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, agent *domain.Agent) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO agents (id, external_id, name, role) VALUES (?, ?, ?, ?)`,
		agent.ID,
		agent.ExternalID,
		agent.Name,
		agent.Role,
	).Error
}

func (r *repo) FindByExternalID(ctx context.Context, db *gorm.DB, externalID int64) (*domain.Agent, error) {
	var agent domain.Agent
	err := db.WithContext(ctx).Raw(
		`SELECT id, external_id, name, role FROM agents WHERE external_id = ?`,
		externalID,
	).Scan(&agent).Error
	if err != nil {
		return nil, err
	}
	if agent.ID == 0 {
		return nil, nil
	}
	return &agent, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Agent, error) {
	var agents []*domain.Agent
	err := db.WithContext(ctx).
		Model(&domain.Agent{}).
		Order("external_id asc").
		Find(&agents).Error
	if err != nil {
		return nil, err
	}
	return agents, nil
}
