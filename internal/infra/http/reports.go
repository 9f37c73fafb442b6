package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mkandie/rentroll/internal/domain/ledger"
	"github.com/mkandie/rentroll/internal/domain/payments"
	"github.com/mkandie/rentroll/internal/infra/reports"
)

type ReportsHandler struct {
	log      *slog.Logger
	payments *payments.Repo
	ledger   *ledger.Repo
	now      func() time.Time
}

func NewReportsHandler(log *slog.Logger, pays *payments.Repo, led *ledger.Repo, now func() time.Time) *ReportsHandler {
	return &ReportsHandler{log: log, payments: pays, ledger: led, now: now}
}

func (h *ReportsHandler) PaymentRegister(w http.ResponseWriter, r *http.Request) {
	var (
		pays []payments.Payment
		err  error
	)
	if month := r.URL.Query().Get("month"); month != "" {
		pays, err = h.payments.ListByMonth(r.Context(), month)
	} else {
		pays, err = h.payments.List(r.Context())
	}
	if err != nil {
		h.log.Error("payment register load failed", "err", err)
		writeRepoError(w, err)
		return
	}

	f, err := reports.PaymentRegister(pays)
	if err != nil {
		h.log.Error("payment register build failed", "err", err)
		writeError(w, http.StatusInternalServerError, "report build failed")
		return
	}
	h.send(w, f, "payments.xlsx")
}

func (h *ReportsHandler) Arrears(w http.ResponseWriter, r *http.Request) {
	snap, err := h.ledger.Snapshot(r.Context())
	if err != nil {
		h.log.Error("arrears snapshot failed", "err", err)
		writeError(w, http.StatusInternalServerError, "could not load arrears, retry")
		return
	}

	now := h.now()
	f, err := reports.ArrearsReport(ledger.ComputeArrears(snap, now), now)
	if err != nil {
		h.log.Error("arrears report build failed", "err", err)
		writeError(w, http.StatusInternalServerError, "report build failed")
		return
	}
	h.send(w, f, "arrears.xlsx")
}

func (h *ReportsHandler) send(w http.ResponseWriter, f *excelize.File, name string) {
	defer func() { _ = f.Close() }()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if _, err := f.WriteTo(w); err != nil {
		h.log.Error("report write failed", "name", name, "err", err)
	}
}
