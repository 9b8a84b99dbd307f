package template

import (
	"go.uber.org/fx"

	"github.com/druckwerk/belegdesigner/internal/template/repository"
	"github.com/druckwerk/belegdesigner/internal/template/service"
)

var Module = fx.Module("template.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
