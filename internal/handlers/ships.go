package handlers

import (
	"net/http"
	"strings"

	"vessels/internal/validation"
	"vessels/models"
)

// CreateShipHandler handles POST /api/ships.
func (h *Handler) CreateShipHandler(w http.ResponseWriter, r *http.Request) {
	var ship models.Ship
	if !decodeJSON(w, r, &ship) {
		return
	}
	view, err := h.Svc.CreateShip(r.Context(), &ship)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// ListShipsHandler handles GET /api/ships with optional ?type= and ?search=.
func (h *Handler) ListShipsHandler(w http.ResponseWriter, r *http.Request) {
	var filter models.ShipFilter
	if t := r.URL.Query().Get("type"); t != "" {
		st, err := validation.ParseShipType("type", t)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		filter.Type = &st
	}
	filter.Search = strings.TrimSpace(r.URL.Query().Get("search"))

	ships, err := h.Svc.ListShips(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ships)
}

func (h *Handler) GetShipHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "shipId")
	if !ok {
		return
	}
	view, err := h.Svc.GetShip(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// UpdateShipHandler handles PUT: every field is replaced, omitted ones
// become null.
func (h *Handler) UpdateShipHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "shipId")
	if !ok {
		return
	}
	var ship models.Ship
	if !decodeJSON(w, r, &ship) {
		return
	}
	view, err := h.Svc.UpdateShip(r.Context(), id, &ship)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// PatchShipHandler handles PATCH: only fields present in the body change.
func (h *Handler) PatchShipHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "shipId")
	if !ok {
		return
	}
	body, ok := readBody(w, r)
	if !ok {
		return
	}
	view, err := h.Svc.PatchShip(r.Context(), id, body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) DeleteShipHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "shipId")
	if !ok {
		return
	}
	if err := h.Svc.DeleteShip(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ShipVisitsHandler handles GET /api/ships/{shipId}/visits.
func (h *Handler) ShipVisitsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "shipId")
	if !ok {
		return
	}
	visits, err := h.Svc.ShipVisits(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, visits)
}
