package usecase

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/usecase_radar/app/display/internal/domain"
	"github.com/iWorld-y/usecase_radar/app/display/internal/repo"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/model"
)

// ErrInvalidIndustry the industry is empty or whitespace only
var ErrInvalidIndustry = errors.New("please enter a valid industry or company name")

// Pipeline runs research, generation and resource collection for one industry.
type Pipeline interface {
	Run(ctx context.Context, industry string) (*model.Report, error)
}

// RadarUseCase use case generation logic of the display service
type RadarUseCase struct {
	pipeline Pipeline
	runs     repo.RunRepo
	log      *log.Helper
}

// NewRadarUseCase creates the display use case.
func NewRadarUseCase(pipeline Pipeline, runs repo.RunRepo, logger log.Logger) *RadarUseCase {
	return &RadarUseCase{pipeline: pipeline, runs: runs, log: log.NewHelper(logger)}
}

// Generate validates industry and runs the pipeline once. Results are never
// cached.
func (uc *RadarUseCase) Generate(ctx context.Context, industry string) (*domain.UseCaseReport, error) {
	if industry == "" {
		return nil, ErrInvalidIndustry
	}

	report, err := uc.pipeline.Run(ctx, industry)
	if err != nil {
		uc.log.WithContext(ctx).Errorf("pipeline failed for [%s]: %v", industry, err)
		return nil, err
	}
	return &domain.UseCaseReport{
		Industry: report.Industry,
		UseCases: report.UseCases,
		Datasets: report.Datasets,
		File:     report.File,
	}, nil
}

// ListRuns returns up to limit recent runs.
func (uc *RadarUseCase) ListRuns(ctx context.Context, limit int) ([]*domain.Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return uc.runs.ListRuns(ctx, limit)
}
