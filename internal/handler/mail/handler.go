// Package mail exposes the admin-only send-mail endpoint.
package mail

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	mailmodel "github.com/youthmindhub/backend/internal/model/mail"
	"github.com/youthmindhub/backend/internal/service/auth"
	"github.com/youthmindhub/backend/pkg/utils"
)

// Dispatcher sends one normalized message on behalf of an acting subject.
type Dispatcher interface {
	Send(ctx context.Context, req mailmodel.EmailRequest, actingSubject string) error
}

// Handler sequences authentication, authorization, validation and dispatch.
type Handler struct {
	auth       *auth.Service
	dispatcher Dispatcher
}

// New creates the send-mail handler. Either dependency may be nil when its
// provider is not configured; affected requests then fail individually
// instead of preventing boot.
func New(authSvc *auth.Service, dispatcher Dispatcher) *Handler {
	return &Handler{auth: authSvc, dispatcher: dispatcher}
}

// RegisterRoutes mounts the send-mail route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/send-mail", h.handleSendMail)
}

func (h *Handler) handleSendMail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.auth == nil {
		utils.RespondError(w, http.StatusInternalServerError, "identity provider not configured")
		return
	}
	if h.dispatcher == nil {
		utils.RespondError(w, http.StatusInternalServerError, "mail provider not configured")
		return
	}

	subject, err := h.auth.Authenticate(ctx, r.Header.Get("Authorization"))
	if err != nil {
		if errors.Is(err, auth.ErrMissingToken) {
			utils.RespondError(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
			return
		}
		utils.RespondError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
		return
	}

	if err := h.auth.RequireAdmin(ctx, subject); err != nil {
		if errors.Is(err, auth.ErrForbidden) {
			utils.RespondError(w, http.StatusForbidden, auth.ErrForbidden.Error())
			return
		}
		log.Printf("[mail] role lookup failed for %s: %v", subject.ID, err)
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	req, err := mailmodel.ParseRequest(r.Body)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.dispatcher.Send(ctx, req, subject.ID); err != nil {
		log.WithFields(log.Fields{
			"recipients": []string(req.To),
			"subject":    req.Subject,
			"by":         subject.ID,
		}).Errorf("[mail] dispatch failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
