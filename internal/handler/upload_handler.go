package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// UploadAboutAsset 处理资料图片与简历的上传，表单字段为 file
func (a *API) UploadAboutAsset(c *gin.Context) {
	slot := c.Param("slot")

	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no file uploaded")
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read uploaded file")
		return
	}
	defer src.Close()

	saved, err := a.about.AttachAsset(c.Request.Context(), slot, file.Filename, src)
	if err != nil {
		handleSectionError(c, err)
		return
	}

	body := aboutPayload(saved, false)
	body["message"] = "Upload complete"
	c.JSON(http.StatusOK, body)
}
