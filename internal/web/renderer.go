package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/gin-gonic/gin/render"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

const templatesPattern = "*.html"

// Имена шаблонов верхнего уровня.
const (
	PageIndex         = "index.html"
	PageNotFound      = "404.html"
	FragmentWorkspace = "workspace.html"
	FragmentChecklist = "checklist.html"
	FragmentError     = "error.html"
)

// TemplateRenderer реализует gin render.HTMLRender поверх html/template.
// Все шаблоны лежат в одном наборе: страницы и фрагменты - отдельные файлы, общие блоки - {{define}} в partials.html.
type TemplateRenderer struct {
	logger      *zap.Logger
	debug       bool   // Если true, шаблоны перечитываются с диска при каждом рендере
	templateDir string // Пусто - используются встроенные шаблоны

	mu        sync.RWMutex
	templates *template.Template
}

var _ render.HTMLRender = (*TemplateRenderer)(nil)

// NewTemplateRenderer создает рендерер и сразу разбирает шаблоны.
// Режим debug имеет смысл только вместе с templateDir.
func NewTemplateRenderer(templateDir string, debug bool, logger *zap.Logger) (*TemplateRenderer, error) {
	r := &TemplateRenderer{
		logger:      logger.Named("TemplateRenderer"),
		debug:       debug && templateDir != "",
		templateDir: templateDir,
	}
	tmpl, err := r.parse()
	if err != nil {
		return nil, err
	}
	r.templates = tmpl
	r.logger.Info("Templates loaded",
		zap.String("dir", r.sourceName()),
		zap.Bool("debug", r.debug),
	)
	return r, nil
}

func (t *TemplateRenderer) sourceName() string {
	if t.templateDir == "" {
		return "embedded"
	}
	return t.templateDir
}

func (t *TemplateRenderer) source() (fs.FS, error) {
	if t.templateDir == "" {
		return fs.Sub(embeddedTemplates, "templates")
	}
	return os.DirFS(t.templateDir), nil
}

func (t *TemplateRenderer) parse() (*template.Template, error) {
	src, err := t.source()
	if err != nil {
		return nil, fmt.Errorf("failed to open templates: %w", err)
	}
	tmpl, err := template.New("").ParseFS(src, templatesPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates from %s: %w", t.sourceName(), err)
	}
	return tmpl, nil
}

// current возвращает набор шаблонов. В debug-режиме набор перечитывается;
// при ошибке разбора остается последний удачный.
func (t *TemplateRenderer) current() *template.Template {
	if t.debug {
		tmpl, err := t.parse()
		if err != nil {
			t.logger.Error("Failed to re-parse templates, using cached set", zap.Error(err))
		} else {
			t.mu.Lock()
			t.templates = tmpl
			t.mu.Unlock()
			return tmpl
		}
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.templates
}

// Instance реализует render.HTMLRender.
func (t *TemplateRenderer) Instance(name string, data any) render.Render {
	return render.HTML{
		Template: t.current(),
		Name:     name,
		Data:     data,
	}
}

// Render выполняет именованный шаблон в w.
func (t *TemplateRenderer) Render(w io.Writer, name string, data any) error {
	tmpl := t.current().Lookup(name)
	if tmpl == nil {
		t.logger.Error("Template not found", zap.String("templateName", name))
		return fmt.Errorf("template %s not found", name)
	}
	if err := tmpl.Execute(w, data); err != nil {
		t.logger.Error("Failed to execute template", zap.String("templateName", name), zap.Error(err))
		return fmt.Errorf("template execution failed for %s: %w", name, err)
	}
	return nil
}
