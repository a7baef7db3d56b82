package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"vessels/internal/apperror"
	"vessels/internal/logging"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Handler exposes Service over HTTP.
type Handler struct {
	Svc Service
	Log logrus.FieldLogger
}

func NewHandler(svc Service, log logrus.FieldLogger) *Handler {
	return &Handler{Svc: svc, Log: log}
}

// PingHandler answers "ok" while the store is reachable.
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Ping(r.Context()); err != nil {
		logging.FromRequest(h.Log, r).WithError(err).Error("ping failed")
		http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type errorResponse struct {
	Error  string                `json:"error"`
	Fields []apperror.FieldError `json:"fields,omitempty"`
}

// readBody reads the size-limited request body. It writes the 400 itself and
// returns false on failure.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Failed to read request body"})
		return nil, false
	}
	return body, true
}

// decodeJSON unmarshals the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, ok := readBody(w, r)
	if !ok {
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON format"})
		return false
	}
	return true
}

// pathID parses a positive integer URL parameter.
func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid " + param})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps service errors to status codes. Unknown errors are logged
// and reported as 500 without detail.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *apperror.ValidationError
	var nf *apperror.NotFoundError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Validation failed", Fields: verr.Fields})
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: nf.Error()})
	case errors.Is(err, apperror.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	default:
		logging.FromRequest(h.Log, r).WithError(err).
			WithFields(logrus.Fields{"method": r.Method, "path": r.URL.Path}).
			Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}
