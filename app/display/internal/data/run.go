package data

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/usecase_radar/app/display/internal/domain"
	"github.com/iWorld-y/usecase_radar/app/display/internal/repo"
)

type runRepo struct {
	data *Data
	log  *log.Helper
}

func NewRunRepo(data *Data, logger log.Logger) repo.RunRepo {
	return &runRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *runRepo) ListRuns(ctx context.Context, limit int) ([]*domain.Run, error) {
	if r.data.store == nil {
		return nil, repo.ErrHistoryDisabled
	}

	records, err := r.data.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, err
	}

	runs := make([]*domain.Run, 0, len(records))
	for _, rec := range records {
		runs = append(runs, &domain.Run{
			ID:        rec.ID,
			Industry:  rec.Industry,
			UseCases:  rec.UseCases,
			Datasets:  rec.Datasets,
			File:      rec.File,
			CreatedAt: rec.CreatedAt,
		})
	}
	return runs, nil
}
