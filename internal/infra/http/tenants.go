package http

import (
	"log/slog"
	"net/http"

	"github.com/mkandie/rentroll/internal/domain/tenants"
)

type TenantsHandler struct {
	log  *slog.Logger
	repo *tenants.Repo
}

func NewTenantsHandler(log *slog.Logger, repo *tenants.Repo) *TenantsHandler {
	return &TenantsHandler{log: log, repo: repo}
}

type tenantRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (h *TenantsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tenantRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := h.repo.Create(r.Context(), req.Name, req.Phone, req.Email)
	if err != nil {
		h.log.Error("create tenant failed", "err", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (h *TenantsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	t, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error("get tenant failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TenantsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req tenantRequest
	if !decodeBody(w, r, &req) {
		return
	}
	t, err := h.repo.Update(r.Context(), id, req.Name, req.Phone, req.Email)
	if err != nil {
		h.log.Error("update tenant failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, "tenant not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (h *TenantsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.log.Error("delete tenant failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TenantsHandler) List(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		out, err := h.repo.SearchByName(r.Context(), q)
		if err != nil {
			h.log.Error("search tenants failed", "err", err)
			writeRepoError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
		return
	}
	out, err := h.repo.List(r.Context())
	if err != nil {
		h.log.Error("list tenants failed", "err", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
