package audit

import (
	"github.com/aventcrm/relance/internal/audit/repository"
	"github.com/aventcrm/relance/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
