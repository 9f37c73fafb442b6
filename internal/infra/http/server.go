package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkandie/rentroll/internal/domain/blocks"
	"github.com/mkandie/rentroll/internal/domain/ledger"
	"github.com/mkandie/rentroll/internal/domain/payments"
	"github.com/mkandie/rentroll/internal/domain/tenancies"
	"github.com/mkandie/rentroll/internal/domain/tenants"
)

type Server struct {
	srv *http.Server
}

func New(addr string, exposeMetrics bool, log *slog.Logger, pool *pgxpool.Pool) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if exposeMetrics {
		mux.Handle("/metrics", promhttp.Handler())
	}

	now := time.Now

	th := NewTenantsHandler(log, tenants.NewRepo(pool))
	mux.HandleFunc("POST /api/tenants", th.Create)
	mux.HandleFunc("GET /api/tenants", th.List)
	mux.HandleFunc("GET /api/tenants/{id}", th.Get)
	mux.HandleFunc("PUT /api/tenants/{id}", th.Update)
	mux.HandleFunc("DELETE /api/tenants/{id}", th.Delete)

	bh := NewBlocksHandler(log, blocks.NewRepo(pool))
	mux.HandleFunc("POST /api/blocks", bh.Create)
	mux.HandleFunc("GET /api/blocks", bh.List)
	mux.HandleFunc("GET /api/blocks/{id}", bh.Get)
	mux.HandleFunc("PUT /api/blocks/{id}", bh.Update)
	mux.HandleFunc("DELETE /api/blocks/{id}", bh.Delete)
	mux.HandleFunc("GET /api/blocks/{id}/units", bh.ListBlockUnits)
	mux.HandleFunc("POST /api/units", bh.CreateUnit)
	mux.HandleFunc("GET /api/units", bh.ListUnits)
	mux.HandleFunc("GET /api/units/{id}", bh.GetUnit)
	mux.HandleFunc("PUT /api/units/{id}/status", bh.SetUnitStatus)
	mux.HandleFunc("DELETE /api/units/{id}", bh.DeleteUnit)

	tnh := NewTenanciesHandler(log, tenancies.NewRepo(pool), now)
	mux.HandleFunc("POST /api/tenancies", tnh.Create)
	mux.HandleFunc("GET /api/tenancies", tnh.List)
	mux.HandleFunc("GET /api/tenancies/{id}", tnh.Get)
	mux.HandleFunc("POST /api/tenancies/{id}/end", tnh.End)
	mux.HandleFunc("POST /api/tenancies/{id}/notice", tnh.GiveNotice)
	mux.HandleFunc("DELETE /api/tenancies/{id}", tnh.Delete)

	payRepo := payments.NewRepo(pool)
	ph := NewPaymentsHandler(log, payRepo)
	mux.HandleFunc("POST /api/payments", ph.Create)
	mux.HandleFunc("GET /api/payments", ph.List)
	mux.HandleFunc("GET /api/payments/{id}", ph.Get)
	mux.HandleFunc("PUT /api/payments/{id}", ph.Update)
	mux.HandleFunc("DELETE /api/payments/{id}", ph.Delete)

	ledRepo := ledger.NewRepo(pool)
	dh := NewDashboardHandler(log, ledRepo, now)
	mux.HandleFunc("GET /api/dashboard", dh.Get)

	rh := NewReportsHandler(log, payRepo, ledRepo, now)
	mux.HandleFunc("GET /api/reports/payments.xlsx", rh.PaymentRegister)
	mux.HandleFunc("GET /api/reports/arrears.xlsx", rh.Arrears)

	return &Server{srv: &http.Server{Addr: addr, Handler: mux}}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
