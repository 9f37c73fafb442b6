package http

import (
	"log/slog"
	"net/http"

	"github.com/mkandie/rentroll/internal/domain/blocks"
)

type BlocksHandler struct {
	log  *slog.Logger
	repo *blocks.Repo
}

func NewBlocksHandler(log *slog.Logger, repo *blocks.Repo) *BlocksHandler {
	return &BlocksHandler{log: log, repo: repo}
}

type blockRequest struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	TotalUnits  int     `json:"total_units"`
	MonthlyRent float64 `json:"monthly_rent"`
}

func (h *BlocksHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req blockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.MonthlyRent <= 0 {
		writeError(w, http.StatusBadRequest, "monthly rent must be > 0")
		return
	}
	b, err := h.repo.Create(r.Context(), req.Name, req.Address, req.TotalUnits, req.MonthlyRent)
	if err != nil {
		h.log.Error("create block failed", "err", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *BlocksHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	b, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error("get block failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "block not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BlocksHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req blockRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.MonthlyRent <= 0 {
		writeError(w, http.StatusBadRequest, "monthly rent must be > 0")
		return
	}
	b, err := h.repo.Update(r.Context(), id, req.Name, req.Address, req.TotalUnits, req.MonthlyRent)
	if err != nil {
		h.log.Error("update block failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	if b == nil {
		writeError(w, http.StatusNotFound, "block not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Delete cascades: units under the block, their tenancies and those
// tenancies' payments all go.
func (h *BlocksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.log.Error("delete block failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BlocksHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.repo.List(r.Context())
	if err != nil {
		h.log.Error("list blocks failed", "err", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

/* Units */

type unitRequest struct {
	BlockID    int64  `json:"block_id"`
	UnitNumber string `json:"unit_number"`
}

func (h *BlocksHandler) CreateUnit(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	u, err := h.repo.CreateUnit(r.Context(), req.BlockID, req.UnitNumber)
	if err != nil {
		h.log.Error("create unit failed", "err", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (h *BlocksHandler) GetUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	u, err := h.repo.GetUnitByID(r.Context(), id)
	if err != nil {
		h.log.Error("get unit failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "unit not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *BlocksHandler) ListUnits(w http.ResponseWriter, r *http.Request) {
	var (
		out []blocks.Unit
		err error
	)
	if r.URL.Query().Get("status") == "vacant" {
		out, err = h.repo.ListVacantUnits(r.Context())
	} else {
		out, err = h.repo.ListUnits(r.Context())
	}
	if err != nil {
		h.log.Error("list units failed", "err", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *BlocksHandler) ListBlockUnits(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	out, err := h.repo.ListUnitsByBlock(r.Context(), id)
	if err != nil {
		h.log.Error("list block units failed", "block_id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type unitStatusRequest struct {
	Status blocks.UnitStatus `json:"status"`
}

// SetUnitStatus covers the vacant <-> maintenance toggle. Occupancy is
// driven by tenancy create/end, not set directly here.
func (h *BlocksHandler) SetUnitStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	var req unitStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	switch req.Status {
	case blocks.UnitVacant, blocks.UnitMaintenance:
	default:
		writeError(w, http.StatusBadRequest, "status must be vacant or maintenance")
		return
	}
	u, err := h.repo.SetUnitStatus(r.Context(), id, req.Status)
	if err != nil {
		h.log.Error("set unit status failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	if u == nil {
		writeError(w, http.StatusNotFound, "unit not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *BlocksHandler) DeleteUnit(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.repo.DeleteUnit(r.Context(), id); err != nil {
		h.log.Error("delete unit failed", "id", id, "err", err)
		writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
