package agent

import (
	"github.com/aventcrm/relance/internal/agent/repository"
	"github.com/aventcrm/relance/internal/agent/service"
	"go.uber.org/fx"
)

var Module = fx.Module("agent.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
