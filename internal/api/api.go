// Package api exposes the JSON HTTP surface: auth, listing CRUD, photo
// uploads and deal analysis. Handlers translate between wire shapes and the
// service layer; they hold no business logic of their own.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rgoyal/flipfolio/internal/auth"
	"github.com/rgoyal/flipfolio/internal/middleware"
	"github.com/rgoyal/flipfolio/internal/service"
	"github.com/rgoyal/flipfolio/internal/storage"
)

// API bundles the handlers and their dependencies.
type API struct {
	log      *slog.Logger
	auth     *service.AuthService
	listings *service.ListingService
	analyses *service.AnalysisService
	jwt      *auth.JWTManager
}

func New(log *slog.Logger, authSvc *service.AuthService, listings *service.ListingService, analyses *service.AnalysisService, jwt *auth.JWTManager) *API {
	return &API{
		log:      log,
		auth:     authSvc,
		listings: listings,
		analyses: analyses,
		jwt:      jwt,
	}
}

// Routes builds the request mux. Everything under /api except register and
// login requires a bearer token.
func (a *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", a.handleRegister)
	mux.HandleFunc("POST /api/auth/login", a.handleLogin)
	mux.Handle("POST /api/auth/logout", a.require(a.handleLogout))
	mux.Handle("GET /api/auth/me", a.require(a.handleMe))

	mux.Handle("POST /api/listings", a.require(a.handleCreateListing))
	mux.Handle("GET /api/listings", a.require(a.handleListListings))
	mux.Handle("GET /api/listings/{id}", a.require(a.handleGetListing))
	mux.Handle("PUT /api/listings/{id}", a.require(a.handleUpdateListing))
	mux.Handle("DELETE /api/listings/{id}", a.require(a.handleDeleteListing))
	mux.Handle("POST /api/listings/{id}/photos", a.require(a.handleUploadPhoto))

	mux.Handle("POST /api/listings/{id}/analysis", a.require(a.handleRunAnalysis))
	mux.Handle("GET /api/listings/{id}/analysis", a.require(a.handleLatestAnalysis))

	return mux
}

func (a *API) require(h http.HandlerFunc) http.Handler {
	return middleware.RequireAuth(a.jwt, h)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeErrorMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps service and storage errors to HTTP statuses. Anything
// unrecognized is a 500 and gets logged with the request path.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeErrorMsg(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrForbidden):
		writeErrorMsg(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorMsg(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrEmailExists):
		writeErrorMsg(w, http.StatusBadRequest, err.Error())
	default:
		a.log.Error("request failed", "path", r.URL.Path, "error", err)
		writeErrorMsg(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}
