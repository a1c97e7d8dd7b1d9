package models

// ChecklistStatus - статус пункта чеклиста.
type ChecklistStatus string

const (
	StatusPending   ChecklistStatus = "pending"
	StatusCompleted ChecklistStatus = "completed"
	StatusFailed    ChecklistStatus = "failed"
	StatusManual    ChecklistStatus = "manual"
)

// IsValid сообщает, входит ли статус в четыре известных значения.
func (s ChecklistStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusManual:
		return true
	default:
		return false
	}
}

// StatusMap - отображение id пункта в статус, как его вернул сервер.
// Неизвестные значения сохраняются как есть.
type StatusMap map[string]ChecklistStatus

// Lookup - тотальная функция: отсутствующий id или нераспознанный статус дают StatusPending.
func (m StatusMap) Lookup(id string) ChecklistStatus {
	s, ok := m[id]
	if !ok || !s.IsValid() {
		return StatusPending
	}
	return s
}

// Clone копирует карту. Для nil возвращает nil.
func (m StatusMap) Clone() StatusMap {
	if m == nil {
		return nil
	}
	out := make(StatusMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
