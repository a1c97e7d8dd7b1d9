package models

import "strings"

// ContentRequest - тело POST /api/create-content.
type ContentRequest struct {
	Topic       string `json:"topic"`
	ContentType string `json:"content_type"`
	APIKey      string `json:"api_key"`
	APIModel    string `json:"api_model"`
}

// Normalize убирает пробелы по краям всех полей.
func (r ContentRequest) Normalize() ContentRequest {
	return ContentRequest{
		Topic:       strings.TrimSpace(r.Topic),
		ContentType: strings.TrimSpace(r.ContentType),
		APIKey:      strings.TrimSpace(r.APIKey),
		APIModel:    strings.TrimSpace(r.APIModel),
	}
}

// Validate требует все четыре поля.
func (r ContentRequest) Validate() error {
	n := r.Normalize()
	if n.APIKey == "" || n.APIModel == "" || n.Topic == "" || n.ContentType == "" {
		return ErrMissingFields
	}
	return nil
}

// ContentResult - сгенерированные части контента.
// Пустая строка означает, что поле отсутствует: бэкенд отдает "" для несгенерированного.
type ContentResult struct {
	Script          string    `json:"script,omitempty"`
	CarouselContent string    `json:"carousel_content,omitempty"`
	Caption         string    `json:"caption,omitempty"`
	Hashtags        string    `json:"hashtags,omitempty"`
	AltText         string    `json:"alt_text,omitempty"`
	AvatarDialogue  string    `json:"avatar_dialogue,omitempty"`
	ChecklistStatus StatusMap `json:"checklist_status"`
}

// ContentCreation - успешный ответ POST /api/create-content.
type ContentCreation struct {
	Success   bool           `json:"success"`
	SessionID string         `json:"session_id"`
	Result    *ContentResult `json:"result"`
	Errors    []string       `json:"errors,omitempty"`
}

// ChecklistUpdate - тело POST /api/checklist/{session_id}.
type ChecklistUpdate struct {
	TaskID string          `json:"task_id"`
	Status ChecklistStatus `json:"status"`
}

// ChecklistState - ответ эндпоинтов чеклиста.
type ChecklistState struct {
	Success         bool      `json:"success"`
	ChecklistStatus StatusMap `json:"checklist_status"`
}
