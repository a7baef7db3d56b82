package handlers

import (
	"net/http"
	"time"

	"vessels/internal/apperror"
	"vessels/models"
)

// CreateHarbourHandler handles POST /api/harbours.
func (h *Handler) CreateHarbourHandler(w http.ResponseWriter, r *http.Request) {
	var harbour models.Harbour
	if !decodeJSON(w, r, &harbour) {
		return
	}
	if err := h.Svc.CreateHarbour(r.Context(), &harbour); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, harbour)
}

// ListHarboursHandler returns id, name and max_berth_depth only.
func (h *Handler) ListHarboursHandler(w http.ResponseWriter, r *http.Request) {
	harbours, err := h.Svc.ListHarbours(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, harbours)
}

// HarbourDetailsHandler returns the harbour and the ships docked there now,
// or at ?at= (RFC 3339) when given.
func (h *Handler) HarbourDetailsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "harbourId")
	if !ok {
		return
	}
	var at time.Time
	if raw := r.URL.Query().Get("at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.writeError(w, r, apperror.Invalid("at", "Enter a valid RFC 3339 date/time."))
			return
		}
		at = t
	}
	details, err := h.Svc.HarbourDetails(r.Context(), id, at)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *Handler) DeleteHarbourHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "harbourId")
	if !ok {
		return
	}
	if err := h.Svc.DeleteHarbour(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
