// Package http hosts the gateway's single listener: the websocket endpoint
// and the administrative API share one mux and one port.
package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/bayanihanplus/realtime-gateway/config"
	"github.com/bayanihanplus/realtime-gateway/internal/handler/httpapi"
	"github.com/bayanihanplus/realtime-gateway/internal/handler/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
)

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

func NewServer(logger *slog.Logger, cfg *config.Config, api *httpapi.API, wsh *ws.WSHandler) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	api.Register(r)
	r.Handle("/ws", wsh)

	return &Server{
		logger: logger,
		srv: &http.Server{
			Addr:    cfg.Server.Listen,
			Handler: r,
		},
	}
}

func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}

	s.logger.Info("gateway listening", "addr", ln.Addr().String())
	go func() {
		if err := s.srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("http server stopped", "err", err)
		}
	}()
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

var Module = fx.Module("http-server",
	fx.Provide(NewServer),
	fx.Invoke(func(lc fx.Lifecycle, s *Server) {
		lc.Append(fx.Hook{
			OnStart: s.Start,
			OnStop:  s.Stop,
		})
	}),
)
