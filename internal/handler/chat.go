// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voyageplan/trip-planner/internal/dialog"
	"github.com/voyageplan/trip-planner/internal/middleware"
	"github.com/voyageplan/trip-planner/internal/model"
	"github.com/voyageplan/trip-planner/internal/session"
	"github.com/voyageplan/trip-planner/pkg/logger"
)

// ChatHandler handles the dialog endpoint.
type ChatHandler struct {
	machine *dialog.Machine
	store   session.Store
	logger  *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(machine *dialog.Machine, store session.Store, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		machine: machine,
		store:   store,
		logger:  log,
	}
}

// Chat handles POST /api/v1/chat: one dialog turn. The human turn is
// appended here; the machine appends exactly one assistant turn.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := middleware.ValidateSessionID(req.SessionID); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidateMessage(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := middleware.ValidatePreferences(req.Preferences); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	state, _, err := h.store.Get(ctx, sessionID)
	if err != nil {
		h.logger.Error("failed to load session", zap.String("session_id", sessionID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	// Checkbox selections arrive out of band and overwrite the slot before
	// the machine runs.
	if len(req.Preferences) > 0 {
		prefs := make([]string, 0, len(req.Preferences))
		for _, p := range req.Preferences {
			if p = strings.TrimSpace(p); p != "" {
				prefs = append(prefs, strings.ToLower(p))
			}
		}
		state.Preferences = prefs
	}

	state.Transcript = append(state.Transcript, model.Turn{Role: model.RoleHuman, Content: req.Message})

	next := h.machine.Advance(ctx, state, req.Message)

	if err := h.store.Put(ctx, sessionID, next); err != nil {
		h.logger.Error("failed to persist session", zap.String("session_id", sessionID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to persist session")
		return
	}

	var ui any = struct{}{}
	if next.UI != nil {
		ui = next.UI
	}

	w.Header().Set("X-Session-ID", sessionID)
	writeJSON(w, http.StatusOK, &model.ChatResponse{
		Reply: next.LastAssistantReply(),
		UI:    ui,
	})
}
