package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mkandie/rentroll/internal/domain/tenancies"
)

type TenanciesHandler struct {
	log  *slog.Logger
	repo *tenancies.Repo
	now  func() time.Time
}

func NewTenanciesHandler(log *slog.Logger, repo *tenancies.Repo, now func() time.Time) *TenanciesHandler {
	return &TenanciesHandler{log: log, repo: repo, now: now}
}

type tenancyCreateRequest struct {
	TenantID  int64  `json:"tenant_id"`
	UnitID    int64  `json:"unit_id"`
	StartDate string `json:"start_date"`
}

func (h *TenanciesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tenancyCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.TenantID <= 0 || req.UnitID <= 0 {
		writeError(w, http.StatusBadRequest, "tenant_id and unit_id are required")
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	t, err := h.repo.Create(r.Context(), req.TenantID, req.UnitID, start)
	if err != nil {
		h.log.Error("create tenancy failed", "unit_id", req.UnitID, "err", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// End closes the tenancy as of today and vacates its unit.
func (h *TenanciesHandler) End(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	t, err := h.repo.End(r.Context(), id, h.now())
	if err != nil {
		h.log.Error("end tenancy failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TenanciesHandler) GiveNotice(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	t, err := h.repo.GiveNotice(r.Context(), id)
	if err != nil {
		h.log.Error("give notice failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TenanciesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	t, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error("get tenancy failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "tenancy not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TenanciesHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		out []tenancies.Tenancy
		err error
	)
	if r.URL.Query().Get("status") == "active" {
		out, err = h.repo.ListActive(r.Context())
	} else {
		out, err = h.repo.List(r.Context())
	}
	if err != nil {
		h.log.Error("list tenancies failed", "err", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TenanciesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.log.Error("delete tenancy failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
