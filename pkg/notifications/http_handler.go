package notifications

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stakalivres/notifymail/pkg/logger"
)

// createRequest is the body of POST /. Data is kept raw so that a malformed
// payload degrades to a warning instead of rejecting the notification.
type createRequest struct {
	UserID    string          `json:"userId"`
	Audience  Audience        `json:"audience"`
	Type      Type            `json:"type"`
	Priority  Priority        `json:"priority"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	ActionURL string          `json:"actionUrl"`
	Data      json.RawMessage `json:"data"`
}

func (r createRequest) notification() Notification {
	n := Notification{
		UserID:    r.UserID,
		Audience:  Audience(strings.ToLower(strings.TrimSpace(string(r.Audience)))),
		Type:      Type(strings.ToUpper(string(r.Type))),
		Priority:  Priority(strings.ToUpper(string(r.Priority))),
		Title:     r.Title,
		Message:   r.Message,
		ActionURL: r.ActionURL,
	}

	raw := bytes.TrimSpace(r.Data)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			n.RawData = s
		} else {
			n.RawData = []byte(raw)
		}
	default:
		n.RawData = []byte(raw)
	}
	return n
}

// NewHTTPHandler exposes m over HTTP:
//
//	POST /                       create and deliver a notification
//	GET  /{userID}               list, ?unread=true&limit=&offset=
//	GET  /{userID}/unread-count  number of unread notifications
//	POST /{userID}/read          mark all as read
func NewHTTPHandler(m *Manager, log *slog.Logger) http.Handler {
	if log == nil {
		log = slog.Default()
	}
	h := &httpHandler{manager: m, log: log}

	r := chi.NewRouter()
	r.Post("/", h.create)
	r.Get("/{userID}", h.list)
	r.Get("/{userID}/unread-count", h.unreadCount)
	r.Post("/{userID}/read", h.markAllRead)
	return r
}

type httpHandler struct {
	manager *Manager
	log     *slog.Logger
}

func (h *httpHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		h.writeError(w, r, http.StatusBadRequest, "title is required", nil)
		return
	}
	if req.Type == "" {
		h.writeError(w, r, http.StatusBadRequest, "type is required", nil)
		return
	}

	n := req.notification()
	if n.Audience != "" && n.Audience.Topic() == "" {
		h.writeError(w, r, http.StatusBadRequest, "unknown audience", ErrUnknownAudience)
		return
	}

	n, err := h.manager.send(r.Context(), n)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "failed to create notification", err)
		return
	}

	h.writeJSON(w, http.StatusAccepted, n)
}

func (h *httpHandler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := ListOptions{OnlyUnread: q.Get("unread") == "true"}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		opts.Offset = v
	}

	list, err := h.manager.List(r.Context(), chi.URLParam(r, "userID"), opts)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "failed to list notifications", err)
		return
	}
	if list == nil {
		list = []Notification{}
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *httpHandler) unreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.manager.CountUnread(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, "failed to count notifications", err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int{"unread": n})
}

func (h *httpHandler) markAllRead(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.MarkAllRead(r.Context(), chi.URLParam(r, "userID")); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrNotificationNotFound) {
			status = http.StatusNotFound
		}
		h.writeError(w, r, status, "failed to mark notifications as read", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *httpHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *httpHandler) writeError(w http.ResponseWriter, r *http.Request, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), msg, logger.Error(err))
	}
	h.writeJSON(w, status, map[string]string{"error": msg})
}
