package handler

import (
	"bytes"
	"net/http"

	"avatar-studio/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CustomErrorMiddleware логирует ошибки обработчиков и отдает страницу 404.
func CustomErrorMiddleware(logger *zap.Logger, renderer *web.TemplateRenderer) gin.HandlerFunc {
	log := logger.Named("ErrorMiddleware")
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			for _, ginErr := range c.Errors {
				log.Error("Handler error",
					zap.Error(ginErr.Err),
					zap.Any("meta", ginErr.Meta),
					zap.Int("type", int(ginErr.Type)),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
				)
			}
			if !c.Writer.Written() {
				c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}
			return
		}

		status := c.Writer.Status()

		if status == http.StatusNotFound && !c.Writer.Written() {
			var buf bytes.Buffer
			if err := renderer.Render(&buf, web.PageNotFound, nil); err != nil {
				log.Error("Could not render 404 page", zap.Error(err))
				c.String(http.StatusNotFound, http.StatusText(http.StatusNotFound))
				return
			}
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", buf.Bytes())
			return
		}

		if status >= http.StatusInternalServerError {
			log.Warn("Request resulted in server error status",
				zap.Int("status", status),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
		}
	}
}
