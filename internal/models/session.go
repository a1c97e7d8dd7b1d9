package models

// SessionContext - состояние рабочей области между загрузками страницы.
// Config пишется загрузчиком конфигурации, SessionID/Result/Status - созданием контента
// и обновлениями чеклиста. Новое создание контента заменяет сессию целиком.
type SessionContext struct {
	Config    *Configuration
	SessionID string
	Result    *ContentResult
	Status    StatusMap
	Warnings  []string
}

// HasSession сообщает, есть ли активная сессия.
func (s SessionContext) HasSession() bool {
	return s.SessionID != ""
}

// Checklist возвращает определения пунктов или nil, если конфигурация не загружена.
func (s SessionContext) Checklist() []ChecklistItemDef {
	if s.Config == nil {
		return nil
	}
	return s.Config.Checklist
}

// Clone возвращает независимую копию для рендера.
func (s SessionContext) Clone() SessionContext {
	out := SessionContext{
		Config:    s.Config.Clone(),
		SessionID: s.SessionID,
		Status:    s.Status.Clone(),
		Warnings:  append([]string(nil), s.Warnings...),
	}
	if s.Result != nil {
		r := *s.Result
		r.ChecklistStatus = s.Result.ChecklistStatus.Clone()
		out.Result = &r
	}
	return out
}
