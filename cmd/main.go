package main

import (
	"context"
	"fmt"
	"os"

	"github.com/planvane/planvane-backend/internal/app"
	"github.com/planvane/planvane-backend/internal/utils"
)

func main() {
	a, err := app.New()
	if err != nil {
		fmt.Printf("Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	a.Start()

	// Standalone metrics listener, separate from the API port.
	if metricsAddr := utils.GetEnv("METRICS_ADDR", "", a.Log); metricsAddr != "" {
		a.Metrics.StartServer(context.Background(), a.Log, metricsAddr)
	}

	a.Log.Info("Server listening", "port", a.Cfg.Port)
	if err := a.Run(); err != nil {
		a.Log.Error("Server exited", "error", err)
		os.Exit(1)
	}
}
