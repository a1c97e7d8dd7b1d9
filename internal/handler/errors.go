package handler

import (
	"errors"
	"net/http"

	"avatar-studio/internal/client"
	"avatar-studio/internal/models"
)

const (
	msgConfigUnavailable  = "Failed to load configuration. Make sure the backend is running."
	msgMissingFields      = "Please fill in all required fields."
	msgCreationInProgress = "Content creation is already in progress."
	msgCreationPrefix     = "Failed to create content: "
	msgCreationFallback   = "Content creation failed"
	msgNoActiveSession    = "No active session. Please create content first."
	msgInvalidStatus      = "Invalid checklist status."
	msgChecklistUpdate    = "Failed to update checklist."
	msgUnexpected         = "Something went wrong. Please try again."
)

// userMessage возвращает единственное сообщение об ошибке, которое видит пользователь.
func userMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrConfigUnavailable):
		return msgConfigUnavailable
	case errors.Is(err, models.ErrMissingFields):
		return msgMissingFields
	case errors.Is(err, models.ErrCreationInProgress):
		return msgCreationInProgress
	case errors.Is(err, models.ErrContentCreation):
		detail := msgCreationFallback
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Detail != "" {
			detail = apiErr.Detail
		}
		return msgCreationPrefix + detail
	case errors.Is(err, models.ErrNoActiveSession):
		return msgNoActiveSession
	case errors.Is(err, models.ErrInvalidStatus):
		return msgInvalidStatus
	case errors.Is(err, models.ErrChecklistUpdate):
		return msgChecklistUpdate
	default:
		return msgUnexpected
	}
}

// errorKind - метка для метрики ошибок.
func errorKind(err error) string {
	switch {
	case errors.Is(err, models.ErrConfigUnavailable):
		return "config"
	case errors.Is(err, models.ErrMissingFields), errors.Is(err, models.ErrInvalidStatus):
		return "validation"
	case errors.Is(err, models.ErrCreationInProgress):
		return "busy"
	case errors.Is(err, models.ErrContentCreation):
		return "creation"
	case errors.Is(err, models.ErrNoActiveSession):
		return "no_session"
	case errors.Is(err, models.ErrChecklistUpdate):
		return "checklist"
	default:
		return "unexpected"
	}
}

// statusFor - HTTP-статус полной страницы с ошибкой (запросы без HTMX).
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrMissingFields), errors.Is(err, models.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNoActiveSession), errors.Is(err, models.ErrCreationInProgress):
		return http.StatusConflict
	case errors.Is(err, models.ErrContentCreation), errors.Is(err, models.ErrChecklistUpdate), errors.Is(err, models.ErrConfigUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
