package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mkandie/rentroll/internal/domain/ledger"
)

type DashboardHandler struct {
	log  *slog.Logger
	repo *ledger.Repo
	now  func() time.Time
}

func NewDashboardHandler(log *slog.Logger, repo *ledger.Repo, now func() time.Time) *DashboardHandler {
	return &DashboardHandler{log: log, repo: repo, now: now}
}

type dashboardResponse struct {
	AsOf       string            `json:"as_of"`
	Statistics ledger.Statistics `json:"statistics"`
	Arrears    []ledger.Standing `json:"arrears"`
}

// Get recomputes everything from a fresh snapshot on every call. Nothing is
// cached, and a failed snapshot returns one error with no partial numbers.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.repo.Snapshot(r.Context())
	if err != nil {
		h.log.Error("dashboard snapshot failed", "err", err)
		writeError(w, http.StatusInternalServerError, "could not load dashboard, retry")
		return
	}

	now := h.now()
	writeJSON(w, http.StatusOK, dashboardResponse{
		AsOf:       now.Format(time.DateOnly),
		Statistics: ledger.ComputeStatistics(snap, now),
		Arrears:    ledger.ComputeArrears(snap, now),
	})
}
