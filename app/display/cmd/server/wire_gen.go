// Injector for the provider graph declared in wire.go, kept in the layout
// wire emits. Running wire in this directory rewrites this file.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package main

import (
	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/usecase_radar/app/display/internal/data"
	"github.com/iWorld-y/usecase_radar/app/display/internal/server"
	"github.com/iWorld-y/usecase_radar/app/display/internal/service"
	"github.com/iWorld-y/usecase_radar/app/display/internal/usecase"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
)

// Injectors from wire.go:

// initApp init kratos application.
func initApp(configConfig *config.Config, logger log.Logger) (*kratos.App, func(), error) {
	dataData, cleanup, err := data.NewData(configConfig, logger)
	if err != nil {
		return nil, nil, err
	}
	pipeline, err := server.NewRadarEngine(configConfig, dataData, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	runRepo := data.NewRunRepo(dataData, logger)
	radarUseCase := usecase.NewRadarUseCase(pipeline, runRepo, logger)
	radarService := service.NewRadarService(radarUseCase, logger)
	httpServer := server.NewHTTPServer(configConfig, radarService, logger)
	app := newApp(logger, httpServer)
	return app, func() {
		cleanup()
	}, nil
}
