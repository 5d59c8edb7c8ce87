package server

import (
	"github.com/google/wire"

	"github.com/iWorld-y/usecase_radar/app/display/internal/data"
	"github.com/iWorld-y/usecase_radar/app/display/internal/service"
	"github.com/iWorld-y/usecase_radar/app/display/internal/usecase"
)

// ProviderSet providers of the display service
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewRadarEngine,

	// Data providers
	data.NewData,
	data.NewRunRepo,

	// UseCase providers
	usecase.NewRadarUseCase,

	// Service providers
	service.NewRadarService,
)
