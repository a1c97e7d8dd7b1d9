package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"avatar-studio/internal/client"
	"avatar-studio/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	contentCreationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "avatar_studio_content_creations_total",
		Help: "Content creation attempts by outcome.",
	}, []string{"outcome"})
	checklistUpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "avatar_studio_checklist_updates_total",
		Help: "Checklist update attempts by outcome.",
	}, []string{"outcome"})
)

// Workflow - контроллер рабочего процесса: конфигурация, создание контента и чеклист.
// Держит единственный SessionContext рабочей области. Авторитетное состояние
// чеклиста всегда на сервере, локально хранится только последний подтвержденный ответ.
type Workflow struct {
	backend client.BackendClient
	logger  *zap.Logger

	mu    sync.RWMutex
	state models.SessionContext

	// creating - единственная защита от повторной отправки, пока запрос создания в полете.
	creating atomic.Bool
}

// NewWorkflow создает контроллер поверх клиента бэкенда.
func NewWorkflow(backend client.BackendClient, logger *zap.Logger) *Workflow {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		backend: backend,
		logger:  logger.Named("Workflow"),
	}
}

// Snapshot возвращает копию текущего состояния для рендера.
func (w *Workflow) Snapshot() models.SessionContext {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.Clone()
}

// Reset забывает сессию, результаты и конфигурацию. Вызывается при каждой загрузке страницы.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = models.SessionContext{}
	w.logger.Debug("Workspace reset")
}

// LoadConfiguration выполняет один запрос конфигурации и кеширует определения чеклиста.
// Повторных попыток нет.
func (w *Workflow) LoadConfiguration(ctx context.Context) (*models.Configuration, error) {
	cfg, err := w.backend.GetConfig(ctx)
	if err != nil {
		w.logger.Error("Failed to load configuration from backend", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", models.ErrConfigUnavailable, err)
	}

	w.mu.Lock()
	w.state.Config = cfg
	w.mu.Unlock()

	w.logger.Info("Configuration loaded",
		zap.Int("models", len(cfg.Models)),
		zap.Int("contentTypes", len(cfg.ContentTypes)),
		zap.Int("checklistItems", len(cfg.Checklist)),
	)
	return cfg.Clone(), nil
}

// CreateContent проверяет поля, отправляет запрос создания и сохраняет новую сессию.
// При ошибке валидации сетевой вызов не выполняется.
func (w *Workflow) CreateContent(ctx context.Context, req models.ContentRequest) (models.SessionContext, error) {
	req = req.Normalize()
	if err := req.Validate(); err != nil {
		contentCreationsTotal.WithLabelValues("invalid").Inc()
		return w.Snapshot(), err
	}

	if !w.creating.CompareAndSwap(false, true) {
		contentCreationsTotal.WithLabelValues("busy").Inc()
		w.logger.Warn("Content creation rejected: another request is in flight")
		return w.Snapshot(), models.ErrCreationInProgress
	}
	defer w.creating.Store(false)

	// Прошлые результаты и чеклист скрываются до ответа. SessionID остается до успешного создания.
	w.mu.Lock()
	w.state.Result = nil
	w.state.Status = nil
	w.state.Warnings = nil
	w.mu.Unlock()

	log := w.logger.With(
		zap.String("topic", req.Topic),
		zap.String("contentType", req.ContentType),
		zap.String("model", req.APIModel),
	)
	log.Info("Creating content")

	out, err := w.backend.CreateContent(ctx, req)
	if err != nil {
		contentCreationsTotal.WithLabelValues("error").Inc()
		log.Error("Content creation failed", zap.Error(err))
		return w.Snapshot(), fmt.Errorf("%w: %w", models.ErrContentCreation, err)
	}

	if out.SessionID == "" {
		log.Warn("Backend returned content without a session id")
	}

	w.mu.Lock()
	w.state.SessionID = out.SessionID
	w.state.Result = out.Result
	w.state.Status = out.Result.ChecklistStatus.Clone()
	w.state.Warnings = append([]string(nil), out.Errors...)
	snapshot := w.state.Clone()
	w.mu.Unlock()

	contentCreationsTotal.WithLabelValues("success").Inc()
	log.Info("Content created", zap.String("sessionID", out.SessionID), zap.Int("warnings", len(out.Errors)))
	return snapshot, nil
}

// UpdateChecklist меняет статус пункта через бэкенд и заменяет локальную карту
// ответом сервера. До подтверждения ничего не меняется.
func (w *Workflow) UpdateChecklist(ctx context.Context, taskID string, status models.ChecklistStatus) (models.SessionContext, error) {
	sessionID := w.currentSessionID()
	if sessionID == "" {
		checklistUpdatesTotal.WithLabelValues("no_session").Inc()
		return w.Snapshot(), models.ErrNoActiveSession
	}
	if taskID == "" {
		checklistUpdatesTotal.WithLabelValues("invalid").Inc()
		return w.Snapshot(), models.ErrMissingFields
	}
	if !status.IsValid() {
		checklistUpdatesTotal.WithLabelValues("invalid").Inc()
		return w.Snapshot(), models.ErrInvalidStatus
	}

	log := w.logger.With(zap.String("sessionID", sessionID), zap.String("taskID", taskID), zap.String("status", string(status)))

	resp, err := w.backend.UpdateChecklist(ctx, sessionID, models.ChecklistUpdate{TaskID: taskID, Status: status})
	if err != nil {
		checklistUpdatesTotal.WithLabelValues("error").Inc()
		log.Error("Checklist update failed", zap.Error(err))
		return w.Snapshot(), fmt.Errorf("%w: %w", models.ErrChecklistUpdate, err)
	}

	snapshot := w.applyChecklistState(sessionID, resp, log)
	log.Info("Checklist item updated", zap.Bool("applied", resp.Success))
	return snapshot, nil
}

// RefreshChecklist перечитывает карту статусов текущей сессии с сервера.
func (w *Workflow) RefreshChecklist(ctx context.Context) (models.SessionContext, error) {
	sessionID := w.currentSessionID()
	if sessionID == "" {
		return w.Snapshot(), models.ErrNoActiveSession
	}

	log := w.logger.With(zap.String("sessionID", sessionID))

	resp, err := w.backend.GetChecklist(ctx, sessionID)
	if err != nil {
		log.Error("Checklist refresh failed", zap.Error(err))
		return w.Snapshot(), fmt.Errorf("%w: %w", models.ErrChecklistUpdate, err)
	}

	return w.applyChecklistState(sessionID, resp, log), nil
}

// applyChecklistState заменяет карту статусов, если ответ успешный и сессия не сменилась за время запроса.
func (w *Workflow) applyChecklistState(sessionID string, resp *models.ChecklistState, log *zap.Logger) models.SessionContext {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case !resp.Success:
		checklistUpdatesTotal.WithLabelValues("rejected").Inc()
		log.Warn("Backend did not confirm checklist change, keeping previous state")
	case w.state.SessionID != sessionID:
		checklistUpdatesTotal.WithLabelValues("stale").Inc()
		log.Warn("Session replaced while checklist request was in flight, dropping response", zap.String("currentSessionID", w.state.SessionID))
	default:
		checklistUpdatesTotal.WithLabelValues("success").Inc()
		status := resp.ChecklistStatus.Clone()
		if status == nil {
			status = models.StatusMap{}
		}
		w.state.Status = status
	}
	return w.state.Clone()
}

func (w *Workflow) currentSessionID() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state.SessionID
}
