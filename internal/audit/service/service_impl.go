package service

import (
	"context"
	"strings"

	"github.com/aventcrm/relance/internal/audit/domain"
	"github.com/aventcrm/relance/internal/clock"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("audit.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, customerID snowflake.ID, agentID *snowflake.ID, action, detail string) error {
	action = strings.TrimSpace(action)
	if action == "" {
		return domain.ErrInvalidAction
	}
	if customerID == 0 {
		return domain.ErrInvalidCustomer
	}

	entry := domain.AuditEntry{
		ID:         s.genID.Generate(),
		CustomerID: customerID,
		AgentID:    agentID,
		Action:     action,
		Detail:     detail,
		CreatedAt:  s.clock.Now().UTC(),
	}

	return s.repo.Insert(ctx, s.db, &entry)
}

func (s *Service) ListForCustomer(ctx context.Context, customerID snowflake.ID) ([]domain.EntryWithAgent, error) {
	if customerID == 0 {
		return nil, domain.ErrInvalidCustomer
	}

	items, err := s.repo.ListForCustomer(ctx, s.db, customerID)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.EntryWithAgent, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		entries = append(entries, *item)
	}
	return entries, nil
}
