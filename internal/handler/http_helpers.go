package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/mailer"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/storage"
	"k8s.io/klog/v2"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseRefParam(c *gin.Context, key string) (service.Ref, bool) {
	ref, err := service.ParseRef(c.Param(key))
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid item reference")
		return service.Ref{}, false
	}
	return ref, true
}

// handleSectionError 把区块写入错误映射为 HTTP 状态码
func handleSectionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrItemNotFound):
		respondError(c, http.StatusNotFound, "item not found")
	case errors.Is(err, service.ErrDefaultItemImmutable):
		respondError(c, http.StatusConflict, "default items cannot be deleted, edit one to save the list first")
	case errors.Is(err, service.ErrDefaultsSuperseded):
		respondError(c, http.StatusConflict, "this list was already saved, reload before editing")
	case errors.Is(err, service.ErrReorderDefaulted):
		respondError(c, http.StatusConflict, "save the list before reordering")
	case errors.Is(err, service.ErrOrderMismatch):
		respondError(c, http.StatusConflict, "order does not match the stored items, reload and retry")
	case errors.Is(err, service.ErrUnknownAssetSlot):
		respondError(c, http.StatusNotFound, "unknown upload slot")
	case errors.Is(err, storage.ErrUnsupportedAsset), errors.Is(err, storage.ErrEmptyAsset):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		klog.Errorf("%s %s 失败: %v", c.Request.Method, c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "operation failed")
	}
}

func handleMailError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, mailer.ErrInvalidMessage):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, mailer.ErrNotConfigured):
		respondError(c, http.StatusServiceUnavailable, "messaging is not available")
	default:
		klog.Errorf("发送留言失败: %v", err)
		respondError(c, http.StatusBadGateway, "failed to send message")
	}
}
