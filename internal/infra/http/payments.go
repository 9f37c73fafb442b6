package http

import (
	"log/slog"
	"net/http"

	"github.com/mkandie/rentroll/internal/domain/payments"
)

type PaymentsHandler struct {
	log  *slog.Logger
	repo *payments.Repo
}

func NewPaymentsHandler(log *slog.Logger, repo *payments.Repo) *PaymentsHandler {
	return &PaymentsHandler{log: log, repo: repo}
}

type paymentRequest struct {
	TenancyID int64   `json:"tenancy_id"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"payment_date"`
	ForMonth  string  `json:"payment_for_month"`
	Method    string  `json:"payment_method"`
	Notes     string  `json:"notes"`
}

func (h *PaymentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be > 0")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "payment_date must be YYYY-MM-DD")
		return
	}
	p, err := h.repo.Create(r.Context(), req.TenancyID, req.Amount, date, req.ForMonth, req.Method, req.Notes)
	if err != nil {
		h.log.Error("create payment failed", "tenancy_id", req.TenancyID, "err", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PaymentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error("get payment failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "payment not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PaymentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req paymentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Amount <= 0 {
		writeError(w, http.StatusBadRequest, "amount must be > 0")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "payment_date must be YYYY-MM-DD")
		return
	}
	p, err := h.repo.Update(r.Context(), id, req.Amount, date, req.ForMonth, req.Method, req.Notes)
	if err != nil {
		h.log.Error("update payment failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "payment not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PaymentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.log.Error("delete payment failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PaymentsHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		out []payments.Payment
		err error
	)
	q := r.URL.Query()
	switch {
	case q.Get("tenancy_id") != "":
		tenancyID, ok := parseQueryID(w, q.Get("tenancy_id"))
		if !ok {
			return
		}
		out, err = h.repo.ListByTenancy(r.Context(), tenancyID)
	case q.Get("month") != "":
		out, err = h.repo.ListByMonth(r.Context(), q.Get("month"))
	default:
		out, err = h.repo.List(r.Context())
	}
	if err != nil {
		h.log.Error("list payments failed", "err", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
