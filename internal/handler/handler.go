package handler

import (
	"errors"
	"net/http"
	"strings"

	"avatar-studio/internal/models"
	"avatar-studio/internal/service"
	"avatar-studio/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const errorContainerSelector = "#errorContainer"

// Handler обслуживает страницу рабочей области и HTMX-фрагменты.
type Handler struct {
	workflow     *service.Workflow
	defaultModel string
	logger       *zap.Logger
}

// NewHandler создает новый Handler.
func NewHandler(workflow *service.Workflow, defaultModel string, logger *zap.Logger) *Handler {
	return &Handler{
		workflow:     workflow,
		defaultModel: defaultModel,
		logger:       logger.Named("Handler"),
	}
}

// RegisterRoutes регистрирует маршруты страницы, фрагментов и healthcheck.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.index)
	r.POST("/content", h.createContent)
	r.POST("/checklist", h.updateChecklist)
	r.POST("/checklist/refresh", h.refreshChecklist)

	r.GET("/health", h.health)
	r.HEAD("/health", h.health)
}

// contentForm - поля формы создания контента.
type contentForm struct {
	APIKey      string `form:"api_key"`
	APIModel    string `form:"api_model"`
	Topic       string `form:"topic"`
	ContentType string `form:"content_type"`
}

func (f contentForm) request() models.ContentRequest {
	return models.ContentRequest{
		Topic:       f.Topic,
		ContentType: f.ContentType,
		APIKey:      f.APIKey,
		APIModel:    f.APIModel,
	}.Normalize()
}

// formValues возвращает значения для повторного вывода формы. Ключ API не возвращается.
func (f contentForm) formValues() web.FormValues {
	req := f.request()
	return web.FormValues{
		Topic:       req.Topic,
		APIModel:    req.APIModel,
		ContentType: req.ContentType,
	}
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// index сбрасывает рабочую область и заново загружает конфигурацию.
func (h *Handler) index(c *gin.Context) {
	h.workflow.Reset()

	var errMsg string
	if _, err := h.workflow.LoadConfiguration(c.Request.Context()); err != nil {
		errMsg = userMessage(err)
		pageLoadsTotal.WithLabelValues("config_error").Inc()
		userErrorsTotal.WithLabelValues(errorKind(err)).Inc()
	} else {
		pageLoadsTotal.WithLabelValues("ok").Inc()
	}

	c.HTML(http.StatusOK, web.PageIndex, web.NewPageView(h.workflow.Snapshot(), web.FormValues{}, h.defaultModel, errMsg))
}

func (h *Handler) createContent(c *gin.Context) {
	var form contentForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Warn("Failed to bind content form", zap.Error(err))
	}

	snap, err := h.workflow.CreateContent(c.Request.Context(), form.request())
	if err != nil {
		msg := userMessage(err)
		userErrorsTotal.WithLabelValues(errorKind(err)).Inc()

		switch {
		case !isHTMX(c):
			c.HTML(statusFor(err), web.PageIndex, web.NewPageView(snap, form.formValues(), h.defaultModel, msg))
		case errors.Is(err, models.ErrContentCreation):
			// Рабочая область уже очищена, ошибка уходит out-of-band.
			c.HTML(http.StatusOK, web.FragmentWorkspace, web.FragmentView{Workspace: web.NewWorkspaceView(snap), Error: msg})
		default:
			h.renderErrorFragment(c, msg)
		}
		return
	}

	if isHTMX(c) {
		c.HTML(http.StatusOK, web.FragmentWorkspace, web.FragmentView{Workspace: web.NewWorkspaceView(snap)})
		return
	}
	c.HTML(http.StatusOK, web.PageIndex, web.NewPageView(snap, form.formValues(), h.defaultModel, ""))
}

func (h *Handler) updateChecklist(c *gin.Context) {
	// id пункта приходит полем формы: в пути он может совпасть с другим маршрутом или содержать "/".
	taskID := strings.TrimSpace(c.PostForm("task_id"))
	status := models.ChecklistStatus(strings.ToLower(strings.TrimSpace(c.PostForm("status"))))

	snap, err := h.workflow.UpdateChecklist(c.Request.Context(), taskID, status)
	h.respondChecklist(c, snap, err)
}

func (h *Handler) refreshChecklist(c *gin.Context) {
	snap, err := h.workflow.RefreshChecklist(c.Request.Context())
	h.respondChecklist(c, snap, err)
}

// respondChecklist отдает фрагмент чеклиста или ошибку. При ошибке чеклист на странице не трогается.
func (h *Handler) respondChecklist(c *gin.Context, snap models.SessionContext, err error) {
	if err != nil {
		msg := userMessage(err)
		userErrorsTotal.WithLabelValues(errorKind(err)).Inc()
		if isHTMX(c) {
			h.renderErrorFragment(c, msg)
			return
		}
		c.HTML(statusFor(err), web.PageIndex, web.NewPageView(snap, web.FormValues{}, h.defaultModel, msg))
		return
	}

	if isHTMX(c) {
		c.HTML(http.StatusOK, web.FragmentChecklist, web.FragmentView{Workspace: web.NewWorkspaceView(snap)})
		return
	}
	c.HTML(http.StatusOK, web.PageIndex, web.NewPageView(snap, web.FormValues{}, h.defaultModel, ""))
}

// renderErrorFragment перенаправляет ответ HTMX в контейнер ошибки, не трогая остальные области.
// Статус 200, так как HTMX не подставляет ответы 4xx/5xx.
func (h *Handler) renderErrorFragment(c *gin.Context, msg string) {
	c.Header("HX-Retarget", errorContainerSelector)
	c.Header("HX-Reswap", "innerHTML")
	c.HTML(http.StatusOK, web.FragmentError, web.FragmentView{Error: msg})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
