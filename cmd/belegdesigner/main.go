// @title           Belegdesigner API
// @version         1.0
// @description     Document template designer and rendering service

// @host      localhost:8080
// @BasePath  /api
// @Schemes 	http https

package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/druckwerk/belegdesigner/internal/clock"
	"github.com/druckwerk/belegdesigner/internal/config"
	"github.com/druckwerk/belegdesigner/internal/events"
	"github.com/druckwerk/belegdesigner/internal/migration"
	"github.com/druckwerk/belegdesigner/internal/observability"
	"github.com/druckwerk/belegdesigner/internal/render"
	"github.com/druckwerk/belegdesigner/internal/seed"
	"github.com/druckwerk/belegdesigner/internal/server"
	"github.com/druckwerk/belegdesigner/internal/template"
	"github.com/druckwerk/belegdesigner/pkg/db"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		fx.Invoke(func(conn *gorm.DB) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			return seed.EnsureStarterTemplates(conn)
		}),

		fx.Provide(events.NewOutbox),
		template.Module,
		render.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
