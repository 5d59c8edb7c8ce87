package data

import (
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/storage"
)

// Data shared data resources of the display service. store is nil when no
// database is configured.
type Data struct {
	store *storage.Storage
}

func NewData(c *config.Config, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	if c.DB.Driver == "" {
		helper.Info("no database configured, run history disabled")
		return &Data{}, func() {}, nil
	}

	store, err := storage.NewStorage(c.DB)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		store.Close()
	}
	return &Data{store: store}, cleanup, nil
}

// Store returns the run history store, or nil.
func (d *Data) Store() *storage.Storage {
	return d.store
}
