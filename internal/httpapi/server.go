package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/dnsprober/internal/connectivity"
	"github.com/hamed0406/dnsprober/internal/control"
	apimw "github.com/hamed0406/dnsprober/internal/httpapi/middleware"
	"github.com/hamed0406/dnsprober/internal/probe"
	"github.com/hamed0406/dnsprober/internal/registry"
	"github.com/hamed0406/dnsprober/internal/repo"
)

type Server struct {
	Logger       *zap.Logger
	Prober       probe.Prober
	ProberV6     probe.Prober // optional; used when a probe request asks for the v6 channel
	Strategy     probe.Strategy
	Connectivity *connectivity.Checker
	Control      *control.Manager
	Catalog      *registry.Catalog
	History      repo.ProbeStore
}

func NewServer(
	logger *zap.Logger,
	prober probe.Prober,
	proberV6 probe.Prober,
	strategy probe.Strategy,
	conn *connectivity.Checker,
	ctl *control.Manager,
	catalog *registry.Catalog,
	history repo.ProbeStore,
) *Server {
	return &Server{
		Logger:       logger,
		Prober:       prober,
		ProberV6:     proberV6,
		Strategy:     strategy,
		Connectivity: conn,
		Control:      ctl,
		Catalog:      catalog,
		History:      history,
	}
}

func (s *Server) Router(keys apimw.Keys, allowedOrigins []string,
	publicRPM, publicBurst, adminRPM, adminBurst int) http.Handler {

	r := chi.NewRouter()

	if len(allowedOrigins) > 0 {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "X-API-Key", "Content-Type"},
		}).Handler)
	} else {
		r.Use(cors.AllowAll().Handler)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(pub chi.Router) {
		pub.Use(apimw.RequireAny(keys))
		pub.Use(apimw.RateLimit(publicRPM, publicBurst))

		pub.Get("/api/providers", s.handleProviders)
		pub.Post("/api/validate", s.handleValidate)
		pub.Post("/api/probe", s.handleProbe)
		pub.Get("/api/connectivity", s.handleConnectivity)
		pub.Get("/api/service", s.handleService)
		pub.Get("/api/history", s.handleHistory)
	})

	r.Group(func(adm chi.Router) {
		adm.Use(apimw.RequireAdmin(keys))
		adm.Use(apimw.RateLimit(adminRPM, adminBurst))

		adm.Post("/api/dns", s.handleChangeDNS)
		adm.Delete("/api/dns", s.handleDisconnect)
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
