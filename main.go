package main

import (
	"errors"
	"net/http"

	"github.com/Tshenolo1994/fe-dev-test-tshenolo/config"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/routes"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/store"
	"github.com/Tshenolo1994/fe-dev-test-tshenolo/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	s, err := store.Open(cfg)
	if err != nil {
		utils.Sugar.Fatalf("open %s post store: %v", cfg.StoreDriver, err)
	}
	defer func() { _ = s.Close() }()

	r := routes.SetupRouter(s)

	utils.Sugar.Infof("Starting server on port %s (store=%s, graceful)", cfg.AppPort, cfg.StoreDriver)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.Sugar.Errorf("server stopped with error: %v", err)
	}
}
