package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkglog"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	configPath string
	config     pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	goroutine *pkgroutine.Manager

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	// released in reverse order of registration
	closers []namedCloser
}

type namedCloser struct {
	name string
	fn   func(context.Context) error
}

func New(configPath string) *App {
	pkglog.InitLogging(slog.LevelInfo)

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:        ctx,
		cancel:     cancel,
		configPath: configPath,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()

	return app
}
