package handlers

import (
	"net/http"

	"vessels/models"
)

// CreateVisitHandler handles POST /api/visits.
func (h *Handler) CreateVisitHandler(w http.ResponseWriter, r *http.Request) {
	var visit models.Visit
	if !decodeJSON(w, r, &visit) {
		return
	}
	if err := h.Svc.CreateVisit(r.Context(), &visit); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, visit)
}

func (h *Handler) ListVisitsHandler(w http.ResponseWriter, r *http.Request) {
	visits, err := h.Svc.ListVisits(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, visits)
}

func (h *Handler) DeleteVisitHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "visitId")
	if !ok {
		return
	}
	if err := h.Svc.DeleteVisit(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
