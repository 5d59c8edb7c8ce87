package server

import (
	"embed"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/usecase_radar/app/display/internal/service"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/auth"
	"github.com/iWorld-y/usecase_radar/app/usecase_radar/pkg/config"
)

//go:embed assets/*
var assets embed.FS

func NewHTTPServer(c *config.Config, s *service.RadarService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c.Server.Addr != "" {
		opts = append(opts, http.Address(c.Server.Addr))
	}
	if c.Server.Timeout != "" {
		if d, err := time.ParseDuration(c.Server.Timeout); err == nil {
			opts = append(opts, http.Timeout(d))
		}
	}
	if c.Auth.JWTKey != "" {
		opts = append(opts, http.Filter(apiAuthFilter(c.Auth.JWTKey, logger)))
	}

	srv := http.NewServer(opts...)
	RegisterRadarHTTPServer(srv, s)

	// The form page is served outside the JSON API.
	page := newPageHandler(s, logger)
	srv.HandleFunc("/", page.ServeHTTP)

	return srv
}

// apiAuthFilter requires a valid bearer token on /api/ paths.
func apiAuthFilter(key string, logger log.Logger) http.FilterFunc {
	helper := log.NewHelper(logger)
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				next.ServeHTTP(w, r)
				return
			}
			raw, err := auth.BearerToken(r.Header.Get("Authorization"))
			if err == nil {
				_, err = auth.VerifyToken(key, raw)
			}
			if err != nil {
				helper.Warnf("rejected api request %s %s: %v", r.Method, r.URL.Path, err)
				http.DefaultErrorEncoder(w, r, errors.Unauthorized("UNAUTHORIZED", err.Error()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func errBadLimit(v string) error {
	return errors.BadRequest("INVALID_LIMIT", "limit must be an integer: "+v)
}
