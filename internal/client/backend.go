package client

import (
	"context"
	"fmt"

	"avatar-studio/internal/models"
)

// BackendClient определяет интерфейс для взаимодействия с бэкендом генерации контента.
type BackendClient interface {
	// GetConfig загружает модели, типы контента и определения чеклиста.
	GetConfig(ctx context.Context) (*models.Configuration, error)

	// CreateContent запускает генерацию контента. При статусе не 2xx возвращает *APIError.
	CreateContent(ctx context.Context, req models.ContentRequest) (*models.ContentCreation, error)

	// UpdateChecklist меняет статус одного пункта чеклиста в сессии.
	UpdateChecklist(ctx context.Context, sessionID string, update models.ChecklistUpdate) (*models.ChecklistState, error)

	// GetChecklist читает текущую карту статусов сессии.
	GetChecklist(ctx context.Context, sessionID string) (*models.ChecklistState, error)
}

// APIError - ответ бэкенда со статусом не 2xx.
// Detail берется из поля "detail" тела ответа, если оно строковое.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}
