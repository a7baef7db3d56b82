package handlers

import (
	"net/http"

	"vessels/models"
)

// CreateCompanyHandler handles POST /api/companies.
func (h *Handler) CreateCompanyHandler(w http.ResponseWriter, r *http.Request) {
	var company models.Company
	if !decodeJSON(w, r, &company) {
		return
	}
	if err := h.Svc.CreateCompany(r.Context(), &company); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, company)
}

func (h *Handler) ListCompaniesHandler(w http.ResponseWriter, r *http.Request) {
	companies, err := h.Svc.ListCompanies(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

// DeleteCompanyHandler also removes the company's persons, ships and their
// visits.
func (h *Handler) DeleteCompanyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "companyId")
	if !ok {
		return
	}
	if err := h.Svc.DeleteCompany(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreatePersonHandler handles POST /api/persons.
func (h *Handler) CreatePersonHandler(w http.ResponseWriter, r *http.Request) {
	var person models.Person
	if !decodeJSON(w, r, &person) {
		return
	}
	if err := h.Svc.CreatePerson(r.Context(), &person); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, person)
}

func (h *Handler) ListPersonsHandler(w http.ResponseWriter, r *http.Request) {
	persons, err := h.Svc.ListPersons(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, persons)
}

func (h *Handler) DeletePersonHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "personId")
	if !ok {
		return
	}
	if err := h.Svc.DeletePerson(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
