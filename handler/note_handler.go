package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minhtran-dev/studynotes-be/service"
	"github.com/minhtran-dev/studynotes-be/types"
)

type NoteHandler struct {
	notes *service.NoteService
}

func NewNoteHandler(notes *service.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

func (h *NoteHandler) HandleCreateNote(c *gin.Context) {
	var req types.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: "error", Message: "invalid request body"})
		return
	}

	note, err := h.notes.CreateNote(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{Status: "error", Message: "failed to create note"})
		return
	}
	c.JSON(http.StatusCreated, types.DataResponse{Status: "ok", Data: note})
}

func (h *NoteHandler) HandleGetNote(c *gin.Context) {
	note, err := h.notes.GetNote(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, types.DataResponse{Status: "error", Message: "note not found"})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: "ok", Data: note})
}

func (h *NoteHandler) HandleAttachLink(c *gin.Context) {
	var req types.AttachLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: "error", Message: "invalid request body"})
		return
	}

	doc, err := h.notes.AttachLink(c.Request.Context(), c.Param("id"), req.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{Status: "error", Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, types.DataResponse{Status: "ok", Data: types.UploadResponse{
		DocumentID:   doc.ID,
		OriginalName: doc.Name,
		MimeType:     doc.MimeType,
	}})
}
