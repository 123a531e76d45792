// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/MKhiriev/vetfinder/internal/config"
	"github.com/MKhiriev/vetfinder/internal/logger"
	"github.com/MKhiriev/vetfinder/internal/remote"
)

// Handler serves the emulator's HTTP API.
type Handler struct {
	store  *MemStore
	cfg    config.Server
	logger *logger.Logger
}

func NewHandler(store *MemStore, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("emulator handler created")
	return &Handler{store: store, cfg: cfg, logger: logger}
}

// Init builds the emulator's router. Document routes require a bearer
// token from the anonymous sign-in endpoint.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(h.withLogger)
	router.Use(h.withLogging)

	router.Group(func(r chi.Router) {
		r.Post("/api/auth/anonymous", h.signInAnonymously)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/data/*", h.getData)
		r.Put("/api/data/*", h.putData)
		r.Delete("/api/data/*", h.deleteData)
	})

	return router
}

// signInAnonymously mints a fresh anonymous identity and a bearer token
// for it. The emulator has no user database: the uid exists only inside
// the issued token and the documents written under it.
func (h *Handler) signInAnonymously(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	uid := uuid.NewString()
	token, err := generateToken(h.cfg.TokenIssuer, uid, h.cfg.TokenDuration, h.cfg.TokenSignKey)
	if err != nil {
		log.Err(err).Msg("token generation failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Info().Str("uid", uid).Msg("anonymous sign-in")
	writeJSON(w, http.StatusOK, map[string]string{"uid": uid, "token": token})
}

func (h *Handler) getData(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	segments, err := splitPath(path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.authorizePath(w, r, segments) {
		return
	}

	if len(segments)%2 == 1 {
		documents, err := h.store.ListDocs(path)
		if err != nil {
			h.writeStoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, collectionPayload(documents))
		return
	}

	fields, err := h.store.GetDoc(path)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": segments[len(segments)-1], "data": fields})
}

func (h *Handler) putData(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	segments, err := splitPath(path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.authorizePath(w, r, segments) {
		return
	}

	data := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, "malformed JSON body", http.StatusBadRequest)
		return
	}

	merge := r.URL.Query().Get("merge") == "true"
	if err := h.store.SetDoc(path, data, merge); err != nil {
		h.writeStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteData(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	segments, err := splitPath(path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.authorizePath(w, r, segments) {
		return
	}

	if err := h.store.DeleteDoc(path); err != nil {
		h.writeStoreError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// authorizePath enforces identity scoping: paths under users/{uid} are
// reachable only with a token whose subject is that uid. Everything else
// is shared data open to any authenticated caller.
func (h *Handler) authorizePath(w http.ResponseWriter, r *http.Request, segments []string) bool {
	if segments[0] != usersSegment || len(segments) < 2 {
		return true
	}

	uid := uidFromRequest(r)
	if segments[1] != uid {
		logger.FromRequest(r).Warn().
			Str("uid", uid).
			Str("path", strings.Join(segments, "/")).
			Msg("cross-user access rejected")
		http.Error(w, ErrForeignUserPath.Error(), http.StatusForbidden)
		return false
	}

	return true
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, remote.ErrDocumentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, remote.ErrBadDocumentPath):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		logger.FromRequest(r).Err(err).Msg("store operation failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

const usersSegment = "users"

func collectionPayload(documents []remote.Document) map[string]any {
	payload := make([]map[string]any, 0, len(documents))
	for _, doc := range documents {
		payload = append(payload, map[string]any{"id": doc.ID, "data": doc.Data})
	}
	return map[string]any{"documents": payload}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// NewHTTPServer wraps handler in an http.Server with bounded read and
// write timeouts. The binary owns the server lifecycle.
func NewHTTPServer(address string, handler http.Handler, requestTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:         address,
		Handler:      handler,
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout,
	}
}
