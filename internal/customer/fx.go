package customer

import (
	"github.com/aventcrm/relance/internal/customer/repository"
	"github.com/aventcrm/relance/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
