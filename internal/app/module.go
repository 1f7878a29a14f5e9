package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/fraudboard/internal/dashboard"
)

func (a *App) initModules() {
	closer, err := dashboard.New(dashboard.Dependency{
		Config:    a.config,
		Router:    a.router,
		Goroutine: a.goroutine,
		Context:   a.ctx,
	})
	if err != nil {
		slog.Error("failed to init module dashboard", "error", err)
		os.Exit(1)
	}
	if closer != nil {
		a.addCloser("Dashboard", closer)
	}
}
