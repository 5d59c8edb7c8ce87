package server

import (
	"context"
	"strconv"

	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/usecase_radar/app/display/internal/service"
)

const (
	OperationRadarGenerateUseCases = "/usecase_radar.display.v1.Radar/GenerateUseCases"
	OperationRadarListRuns         = "/usecase_radar.display.v1.Radar/ListRuns"
)

// RadarHTTPServer JSON API of the display service
type RadarHTTPServer interface {
	GenerateUseCases(context.Context, *service.GenerateUseCasesReq) (*service.GenerateUseCasesReply, error)
	ListRuns(context.Context, *service.ListRunsReq) (*service.ListRunsReply, error)
}

func RegisterRadarHTTPServer(s *http.Server, srv RadarHTTPServer) {
	r := s.Route("/")
	r.POST("/api/v1/usecases", _Radar_GenerateUseCases0_HTTP_Handler(srv))
	r.GET("/api/v1/runs", _Radar_ListRuns0_HTTP_Handler(srv))
}

func _Radar_GenerateUseCases0_HTTP_Handler(srv RadarHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.GenerateUseCasesReq
		if err := ctx.Bind(&in); err != nil {
			return err
		}
		http.SetOperation(ctx, OperationRadarGenerateUseCases)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.GenerateUseCases(ctx, req.(*service.GenerateUseCasesReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*service.GenerateUseCasesReply)
		return ctx.Result(200, reply)
	}
}

func _Radar_ListRuns0_HTTP_Handler(srv RadarHTTPServer) func(ctx http.Context) error {
	return func(ctx http.Context) error {
		var in service.ListRunsReq
		if v := ctx.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errBadLimit(v)
			}
			in.Limit = n
		}
		http.SetOperation(ctx, OperationRadarListRuns)
		h := ctx.Middleware(func(ctx context.Context, req interface{}) (interface{}, error) {
			return srv.ListRuns(ctx, req.(*service.ListRunsReq))
		})
		out, err := h(ctx, &in)
		if err != nil {
			return err
		}
		reply := out.(*service.ListRunsReply)
		return ctx.Result(200, reply)
	}
}
