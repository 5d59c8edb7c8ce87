package server

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/usecase_radar/app/display/internal/data"
	"github.com/iWorld-y/usecase_radar/app/display/internal/usecase"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/engine"
)

// NewRadarEngine builds the pipeline engine from the shared config. Runs are
// recorded in the data layer's store when one is configured.
func NewRadarEngine(c *config.Config, d *data.Data, logger log.Logger) (usecase.Pipeline, error) {
	eng, err := engine.NewEngine(context.Background(), c, d.Store())
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init engine: %v", err)
		return nil, err
	}
	return eng, nil
}
