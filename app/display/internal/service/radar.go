package service

import (
	"context"
	"errors"
	"time"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/usecase_radar/app/display/internal/repo"
	"github.com/iWorld-y/usecase_radar/app/display/internal/usecase"
)

type GenerateUseCasesReq struct {
	Industry string `json:"industry"`
}

type GenerateUseCasesReply struct {
	Industry string   `json:"industry"`
	UseCases []string `json:"use_cases"`
	Datasets []string `json:"datasets"`
	File     string   `json:"file"`
}

type ListRunsReq struct {
	Limit int `json:"limit"`
}

type RunSummary struct {
	ID        int64    `json:"id"`
	Industry  string   `json:"industry"`
	UseCases  []string `json:"use_cases"`
	Datasets  []string `json:"datasets"`
	File      string   `json:"file"`
	CreatedAt string   `json:"created_at"`
}

type ListRunsReply struct {
	Runs []*RunSummary `json:"runs"`
}

type RadarService struct {
	uc  *usecase.RadarUseCase
	log *log.Helper
}

func NewRadarService(uc *usecase.RadarUseCase, logger log.Logger) *RadarService {
	return &RadarService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

func (s *RadarService) GenerateUseCases(ctx context.Context, req *GenerateUseCasesReq) (*GenerateUseCasesReply, error) {
	r, err := s.uc.Generate(ctx, req.Industry)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidIndustry) {
			return nil, kerrors.BadRequest("INVALID_INDUSTRY", err.Error())
		}
		return nil, kerrors.InternalServer("PIPELINE_FAILED", err.Error())
	}
	return &GenerateUseCasesReply{
		Industry: r.Industry,
		UseCases: r.UseCases,
		Datasets: r.Datasets,
		File:     r.File,
	}, nil
}

func (s *RadarService) ListRuns(ctx context.Context, req *ListRunsReq) (*ListRunsReply, error) {
	runs, err := s.uc.ListRuns(ctx, req.Limit)
	if err != nil {
		if errors.Is(err, repo.ErrHistoryDisabled) {
			return nil, kerrors.ServiceUnavailable("HISTORY_DISABLED", err.Error())
		}
		return nil, kerrors.InternalServer("HISTORY_FAILED", err.Error())
	}

	list := make([]*RunSummary, 0, len(runs))
	for _, r := range runs {
		list = append(list, &RunSummary{
			ID:        r.ID,
			Industry:  r.Industry,
			UseCases:  r.UseCases,
			Datasets:  r.Datasets,
			File:      r.File,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	return &ListRunsReply{Runs: list}, nil
}
