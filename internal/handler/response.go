package handler

import (
	"github.com/Anamiiikka/fundhive/internal/apperr"
	"github.com/Anamiiikka/fundhive/internal/logger"
	"github.com/gin-gonic/gin"
)

// HandleError 将业务错误映射为HTTP响应。
// 响应体一律是 {"message": ...}，不向调用方暴露内部细节。
func HandleError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	message := err.Error()
	if apperr.KindOf(err) == apperr.KindUnknown {
		logger.Error("Unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "Server error"
	} else if apperr.KindOf(err) == apperr.KindUnavailable {
		logger.Error("Storage error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"message": message})
}
