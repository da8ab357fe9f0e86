package entryflow

import "go.uber.org/fx"

var Module = fx.Module("entryflow",
	fx.Provide(NewManager),
)
