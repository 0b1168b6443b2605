package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/juristech/legara/internal/clock"
	"github.com/juristech/legara/internal/config"
	"github.com/juristech/legara/internal/migration"
	"github.com/juristech/legara/internal/observability"
	"github.com/juristech/legara/internal/scheduler"
	"github.com/juristech/legara/internal/server"
	"github.com/juristech/legara/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
		scheduler.Module,
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
