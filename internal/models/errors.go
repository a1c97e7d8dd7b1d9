package models

import "errors"

// Стандартные ошибки рабочего процесса создания контента
var (
	// Конфигурация
	ErrConfigUnavailable = errors.New("configuration is not loaded")

	// Валидация
	ErrMissingFields = errors.New("required fields are missing")
	ErrInvalidStatus = errors.New("invalid checklist status")

	// Сессия и создание контента
	ErrNoActiveSession    = errors.New("no active session")
	ErrCreationInProgress = errors.New("content creation is already in progress")
	ErrContentCreation    = errors.New("content creation failed")

	// Чеклист
	ErrChecklistUpdate = errors.New("checklist update failed")
)
