package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/username/networth/src/logger"
	"github.com/username/networth/src/security"
	"github.com/username/networth/src/services"
	"github.com/username/networth/src/store"
	"github.com/username/networth/src/utils"
)

// AdminHandler serves the maintenance endpoints. They exist only while an
// admin key hash is configured.
type AdminHandler struct {
	store        *store.Store
	summaries    services.SummaryService
	auth         *security.AdminAuth
	snapshotPath string
}

func NewAdminHandler(s *store.Store, summaries services.SummaryService, auth *security.AdminAuth, snapshotPath string) *AdminHandler {
	return &AdminHandler{
		store:        s,
		summaries:    summaries,
		auth:         auth,
		snapshotPath: snapshotPath,
	}
}

func (h *AdminHandler) AdminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !h.auth.Enabled() {
			http.NotFound(w, r)
			return
		}

		key := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
		if err := h.auth.Verify(key); err != nil {
			if errors.Is(err, security.ErrInvalidKey) {
				logger.L.Warn("AdminMiddleware: rejected admin key", "path", r.URL.Path, "remoteAddr", r.RemoteAddr)
			}
			utils.SendJSONError(w, "invalid admin key", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (h *AdminHandler) HandleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.store.SaveSnapshot(h.snapshotPath); err != nil {
		sendError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"path": h.snapshotPath})
}

func (h *AdminHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	h.summaries.Clear()
	w.WriteHeader(http.StatusNoContent)
}
