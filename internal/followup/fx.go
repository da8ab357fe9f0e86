package followup

import (
	"github.com/aventcrm/relance/internal/followup/repository"
	"github.com/aventcrm/relance/internal/followup/service"
	"go.uber.org/fx"
)

var Module = fx.Module("followup.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
