package pending

import "go.uber.org/fx"

var Module = fx.Module("pending",
	fx.Provide(NewBuffer),
)
