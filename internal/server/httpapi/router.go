// Package httpapi serves the public share link and a health check over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"github.com/dmitrijs2005/vaultshare/internal/logging"
	"github.com/dmitrijs2005/vaultshare/internal/server/presenter"
	"github.com/dmitrijs2005/vaultshare/internal/server/services"
	"github.com/gorilla/mux"
)

// Retriever consumes one view of a share.
type Retriever interface {
	Retrieve(ctx context.Context, rawToken string) (*services.RetrievalResult, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type handler struct {
	shares Retriever
	store  Pinger
	logger logging.Logger
}

// NewRouter wires the public routes. A nil store always reports healthy.
func NewRouter(shares Retriever, store Pinger, l logging.Logger) *mux.Router {
	h := &handler{shares: shares, store: store, logger: l}

	r := mux.NewRouter()
	r.Use(recoveryMiddleware(l))
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "")
	})

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	share := r.PathPrefix("/share").Subrouter()
	share.Use(noStoreMiddleware)
	// A missing or malformed token still goes through Retrieve so every
	// unusable link renders the same not-found view.
	share.HandleFunc("", h.retrieve).Methods(http.MethodGet)
	share.HandleFunc("/{token:.*}", h.retrieve).Methods(http.MethodGet)

	return r
}

func (h *handler) retrieve(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	res, err := h.shares.Retrieve(r.Context(), token)
	if err != nil {
		if errors.Is(err, common.ErrContention) {
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusServiceUnavailable, "share is busy, try again")
			return
		}
		h.logger.Error(r.Context(), "retrieve share failed", "error", err)
		writeError(w, http.StatusInternalServerError, "")
		return
	}

	view := presenter.Render(res)
	writeJSON(w, presenter.HTTPStatus(res.Status), view)
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.store != nil {
		if err := h.store.PingContext(r.Context()); err != nil {
			h.logger.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
