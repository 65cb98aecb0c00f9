package main

import (
	"github.com/lineagemap/backend/internal/server"
	"github.com/lineagemap/backend/internal/util"
	"github.com/lineagemap/backend/pkg/logger"
	"github.com/lineagemap/backend/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	logger.Init(console.New(console.Params{
		Debug: debug,
	}))

	server.Init()
}
