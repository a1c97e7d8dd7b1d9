package models

// ChecklistItemDef описывает один пункт чеклиста. Статус здесь не хранится.
type ChecklistItemDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Automated   bool   `json:"automated"`
}

// Configuration - ответ бэкенда на GET /api/config.
// Загружается один раз при открытии страницы и дальше не меняется.
type Configuration struct {
	Models           []string           `json:"models"`
	ContentTypes     []string           `json:"content_types"`
	Checklist        []ChecklistItemDef `json:"checklist"`
	TrendingProfiles []string           `json:"trending_profiles,omitempty"`
}

// Clone возвращает глубокую копию, чтобы рендер не держал ссылки на общее состояние.
func (c *Configuration) Clone() *Configuration {
	if c == nil {
		return nil
	}
	return &Configuration{
		Models:           append([]string(nil), c.Models...),
		ContentTypes:     append([]string(nil), c.ContentTypes...),
		Checklist:        append([]ChecklistItemDef(nil), c.Checklist...),
		TrendingProfiles: append([]string(nil), c.TrendingProfiles...),
	}
}
