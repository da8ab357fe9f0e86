package service

import (
	"context"
	"strings"

	"github.com/aventcrm/relance/internal/agent/domain"
	"github.com/aventcrm/relance/pkg/db"
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
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("agent.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Register(ctx context.Context, externalID int64, name, role string) (domain.Agent, error) {
	if externalID == 0 {
		return domain.Agent{}, domain.ErrInvalidExternalID
	}

	role = strings.TrimSpace(role)
	if role == "" {
		role = domain.RoleAgent
	}
	if role != domain.RoleAgent && role != domain.RoleAdmin {
		return domain.Agent{}, domain.ErrInvalidRole
	}

	agent := domain.Agent{
		ID:         s.genID.Generate(),
		ExternalID: externalID,
		Name:       strings.TrimSpace(name),
		Role:       role,
	}

	if err := s.repo.Insert(ctx, s.db, &agent); err != nil {
		if !db.IsDuplicateKeyErr(err) {
			return domain.Agent{}, err
		}
		existing, findErr := s.repo.FindByExternalID(ctx, s.db, externalID)
		if findErr != nil {
			return domain.Agent{}, findErr
		}
		if existing != nil {
			return *existing, nil
		}
		return domain.Agent{}, err
	}

	s.log.Info("agent registered", zap.Int64("external_id", externalID), zap.String("role", role))
	return agent, nil
}

func (s *Service) Get(ctx context.Context, externalID int64) (domain.Agent, error) {
	item, err := s.repo.FindByExternalID(ctx, s.db, externalID)
	if err != nil {
		return domain.Agent{}, err
	}
	if item == nil {
		return domain.Agent{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Agent, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	agents := make([]domain.Agent, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		agents = append(agents, *item)
	}
	return agents, nil
}
