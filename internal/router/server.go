package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	logger "github.com/sirupsen/logrus"

	"github.com/wellywell/orderboard/internal/auth"
	"github.com/wellywell/orderboard/internal/config"
	"github.com/wellywell/orderboard/internal/handlers"
)

const (
	compressLevel = 5
)

type Middleware interface {
	Handle(h http.Handler) http.Handler
}

type Router struct {
	address string
	router  *chi.Mux
	server  *http.Server
}

func NewRouter(conf *config.ServerConfig, h *handlers.HandlerSet, middlewares ...Middleware) *Router {

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	for _, m := range middlewares {
		r.Use(m.Handle)
	}
	r.Use(middleware.Compress(compressLevel))
	r.Use(middleware.Heartbeat("/ping"))

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/login", h.HandleLoginPage)
	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
	r.Get("/animations/{name}", h.HandleAnimation)

	r.Post("/api/user/login", h.HandleAPILogin)
	r.Get("/api/orders", h.HandleGetOrders)

	secret := []byte(conf.Secret)

	pageAuth := &auth.AuthenticateMiddleware{Secret: secret, LoginPath: "/login"}
	r.Group(func(r chi.Router) {
		r.Use(pageAuth.Handle)
		r.Get("/", h.HandleBoard)
		r.Post("/orders", h.HandleSubmitOrder)
		r.Post("/orders/{id}/done", h.HandleMarkDone)
	})

	apiAuth := &auth.AuthenticateMiddleware{Secret: secret}
	r.Group(func(r chi.Router) {
		r.Use(apiAuth.Handle)
		r.Post("/api/orders", h.HandlePostOrder)
		r.Post("/api/orders/{id}/done", h.HandlePostOrderDone)
	})

	return &Router{
		router:  r,
		address: conf.RunAddress,
		server: &http.Server{
			Addr:              conf.RunAddress,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

func (r *Router) ListenAndServe() error {
	logger.Infof("Listening on %s", r.address)
	err := r.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.server.Shutdown(ctx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		logger.WithFields(logger.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"request_id": middleware.GetReqID(r.Context()),
		}).Debug("request")
	})
}
