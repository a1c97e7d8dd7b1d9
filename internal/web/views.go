package web

import (
	"avatar-studio/internal/models"
)

const (
	modelPlaceholder       = "Select API Model"
	contentTypePlaceholder = "Select Content Type"
)

// Option - один пункт выпадающего списка.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// ResultBlock - подписанный блок с одним сгенерированным полем.
type ResultBlock struct {
	Key   string
	Title string
	Text  string
}

// Badge - пара подпись/стиль для статуса пункта чеклиста.
type Badge struct {
	Label string
	Class string
}

// ChecklistRow - строка чеклиста.
type ChecklistRow struct {
	ID          string
	Name        string
	Description string
	Status      models.ChecklistStatus
	Badge       Badge
	// ShowManual - кнопка "Mark Manual" только для неавтоматизированных пунктов.
	ShowManual bool
}

// FormValues - значения формы, которые возвращаются в страницу. API-ключ сюда не попадает.
type FormValues struct {
	Topic       string
	APIModel    string
	ContentType string
}

// WorkspaceView - область результатов и чеклиста.
type WorkspaceView struct {
	Visible   bool
	SessionID string
	Results   []ResultBlock
	Warnings  []string
	Checklist []ChecklistRow
}

// FragmentView - данные для HTMX-фрагментов: содержимое плюс out-of-band контейнер ошибки.
type FragmentView struct {
	Workspace WorkspaceView
	Error     string
}

// PageView - данные полной страницы.
type PageView struct {
	Title              string
	ModelOptions       []Option
	ContentTypeOptions []Option
	TrendingProfiles   []string
	Form               FormValues
	Error              string
	Workspace          WorkspaceView
}

var badges = map[models.ChecklistStatus]Badge{
	models.StatusPending:   {Label: "Pending", Class: "status-pending"},
	models.StatusCompleted: {Label: "Completed", Class: "status-completed"},
	models.StatusFailed:    {Label: "Failed", Class: "status-failed"},
	models.StatusManual:    {Label: "Manual", Class: "status-manual"},
}

// BadgeFor возвращает бейдж статуса; для неизвестного статуса - бейдж pending.
func BadgeFor(status models.ChecklistStatus) Badge {
	if b, ok := badges[status]; ok {
		return b
	}
	return badges[models.StatusPending]
}

// ResultBlocks строит блоки в фиксированном порядке. Отсутствующие поля пропускаются.
func ResultBlocks(result *models.ContentResult) []ResultBlock {
	if result == nil {
		return nil
	}
	fields := []ResultBlock{
		{Key: "script", Title: "📝 Script", Text: result.Script},
		{Key: "carousel_content", Title: "📚 Carousel Content", Text: result.CarouselContent},
		{Key: "caption", Title: "✍️ Caption", Text: result.Caption},
		{Key: "hashtags", Title: "🏷️ Hashtags", Text: result.Hashtags},
		{Key: "alt_text", Title: "🔍 Alt Text", Text: result.AltText},
		{Key: "avatar_dialogue", Title: "🧍 Avatar Dialogue", Text: result.AvatarDialogue},
	}
	blocks := make([]ResultBlock, 0, len(fields))
	for _, f := range fields {
		if f.Text != "" {
			blocks = append(blocks, f)
		}
	}
	return blocks
}

// ChecklistRows строит по строке на каждое определение, в порядке конфигурации.
// Статус берется через StatusMap.Lookup, поэтому пропущенные id показываются как pending.
func ChecklistRows(defs []models.ChecklistItemDef, status models.StatusMap) []ChecklistRow {
	rows := make([]ChecklistRow, 0, len(defs))
	for _, def := range defs {
		s := status.Lookup(def.ID)
		rows = append(rows, ChecklistRow{
			ID:          def.ID,
			Name:        def.Name,
			Description: def.Description,
			Status:      s,
			Badge:       BadgeFor(s),
			ShowManual:  !def.Automated,
		})
	}
	return rows
}

// SelectOptions строит список с пустым первым пунктом-заглушкой.
// Выбирается selected, если он есть среди values, иначе fallback.
func SelectOptions(placeholder string, values []string, selected, fallback string) []Option {
	pick := ""
	for _, v := range values {
		if v == selected && selected != "" {
			pick = selected
			break
		}
	}
	if pick == "" {
		for _, v := range values {
			if v == fallback && fallback != "" {
				pick = fallback
				break
			}
		}
	}

	opts := make([]Option, 0, len(values)+1)
	opts = append(opts, Option{Value: "", Label: placeholder, Selected: pick == ""})
	for _, v := range values {
		opts = append(opts, Option{Value: v, Label: v, Selected: v == pick})
	}
	return opts
}

// NewWorkspaceView строит область результатов из снимка состояния.
// Область видна только при наличии результата, но строки чеклиста строятся всегда:
// фрагмент #checklist может прийти, пока новое создание контента еще в полете.
func NewWorkspaceView(snap models.SessionContext) WorkspaceView {
	view := WorkspaceView{
		SessionID: snap.SessionID,
		Checklist: ChecklistRows(snap.Checklist(), snap.Status),
	}
	if snap.Result != nil {
		view.Visible = true
		view.Results = ResultBlocks(snap.Result)
		view.Warnings = snap.Warnings
	}
	return view
}

// NewPageView строит полную страницу.
func NewPageView(snap models.SessionContext, form FormValues, defaultModel, errMsg string) PageView {
	view := PageView{
		Title:     "Instagram AI Avatar Automation",
		Form:      form,
		Error:     errMsg,
		Workspace: NewWorkspaceView(snap),
	}
	var modelValues, typeValues []string
	if snap.Config != nil {
		modelValues = snap.Config.Models
		typeValues = snap.Config.ContentTypes
		view.TrendingProfiles = snap.Config.TrendingProfiles
	}
	view.ModelOptions = SelectOptions(modelPlaceholder, modelValues, form.APIModel, defaultModel)
	view.ContentTypeOptions = SelectOptions(contentTypePlaceholder, typeValues, form.ContentType, "")
	return view
}
