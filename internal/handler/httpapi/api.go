package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bayanihanplus/realtime-gateway/internal/domain/model"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/pending"
	"github.com/bayanihanplus/realtime-gateway/internal/domain/registry"
	"github.com/bayanihanplus/realtime-gateway/internal/service"
	"github.com/go-chi/chi/v5"
)

// API exposes the administrative HTTP surface of the gateway.
type API struct {
	logger     *slog.Logger
	dispatcher *service.Dispatcher
	dir        *registry.Directory
	buf        *pending.Buffer
}

func NewAPI(logger *slog.Logger, dispatcher *service.Dispatcher, dir *registry.Directory, buf *pending.Buffer) *API {
	return &API{
		logger:     logger,
		dispatcher: dispatcher,
		dir:        dir,
		buf:        buf,
	}
}

func (a *API) Register(r chi.Router) {
	r.Post("/notify", a.Notify)
	r.Get("/health", a.Health)
}

type notifyRequest struct {
	UserID  model.UserID `json:"userId"`
	Message string       `json:"message"`
	Type    string       `json:"type"`
}

// Notify triggers a notification for one user. This is the only caller that
// learns which delivery branch was taken.
func (a *API) Notify(w http.ResponseWriter, r *http.Request) {
	var req notifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "userId, message, and type are required",
		})
		return
	}

	if req.UserID == "" || req.Message == "" || req.Type == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": "userId, message, and type are required",
		})
		return
	}

	delivered := a.dispatcher.Dispatch(req.UserID.String(), &model.Notification{
		Message: req.Message,
		Type:    req.Type,
	})

	if delivered {
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "storedForLater": true})
}

// Health reports liveness plus the two gauges an operator actually wants to
// watch here: how many users are online and how much the (unbounded) pending
// buffer is holding.
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"online":  a.dir.Len(),
		"pending": a.buf.Total(),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
