package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minhtran-dev/studynotes-be/service"
	"github.com/minhtran-dev/studynotes-be/types"
)

type UploadHandler struct {
	files *service.FileService
}

func NewUploadHandler(files *service.FileService) *UploadHandler {
	return &UploadHandler{files: files}
}

func (h *UploadHandler) HandleUploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: "error", Message: "missing file"})
		return
	}

	doc, err := h.files.UploadDocument(c.Request.Context(), c.Param("id"), c.PostForm("name"), file)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, types.DataResponse{Status: "error", Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, types.DataResponse{Status: "ok", Data: types.UploadResponse{
		DocumentID:   doc.ID,
		OriginalName: doc.Name,
		MimeType:     doc.MimeType,
	}})
}
