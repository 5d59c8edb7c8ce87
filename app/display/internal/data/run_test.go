package data

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/usecase_radar/app/display/internal/repo"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/model"
)

func TestRunRepoListRuns(t *testing.T) {
	cfg := config.Default()
	cfg.DB = config.DBConfig{Driver: "sqlite3", Source: filepath.Join(t.TempDir(), "runs.db")}

	d, cleanup, err := NewData(cfg, log.DefaultLogger)
	require.NoError(t, err)
	t.Cleanup(cleanup)

	_, err = d.Store().SaveRun(context.Background(), &model.Report{
		Industry: "retail",
		UseCases: []string{"1. Forecasting"},
		Datasets: []string{"[a/b](https://huggingface.co/datasets/a/b)"},
		File:     "retail_resources.md",
	})
	require.NoError(t, err)

	runs, err := NewRunRepo(d, log.DefaultLogger).ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "retail", runs[0].Industry)
	assert.Equal(t, []string{"1. Forecasting"}, runs[0].UseCases)
	assert.Equal(t, []string{"[a/b](https://huggingface.co/datasets/a/b)"}, runs[0].Datasets)
	assert.False(t, runs[0].CreatedAt.IsZero())
}

func TestRunRepoWithoutStore(t *testing.T) {
	d, cleanup, err := NewData(config.Default(), log.DefaultLogger)
	require.NoError(t, err)
	defer cleanup()
	assert.Nil(t, d.Store())

	_, err = NewRunRepo(d, log.DefaultLogger).ListRuns(context.Background(), 10)
	assert.ErrorIs(t, err, repo.ErrHistoryDisabled)
}
