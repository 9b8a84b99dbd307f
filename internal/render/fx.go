package render

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/druckwerk/belegdesigner/internal/clock"
)

var Module = fx.Module("render",
	fx.Provide(func(log *zap.Logger, clk clock.Clock) *Engine {
		return NewEngine(log, clk)
	}),
	fx.Provide(NewHTMLPreview),
)
