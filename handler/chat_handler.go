package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minhtran-dev/studynotes-be/service"
	"github.com/minhtran-dev/studynotes-be/types"
)

type ChatHandler struct {
	notes *service.NoteService
	gen   *service.GenerationService
}

func NewChatHandler(notes *service.NoteService, gen *service.GenerationService) *ChatHandler {
	return &ChatHandler{notes: notes, gen: gen}
}

func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: "error", Message: "invalid request body"})
		return
	}

	noteContext := ""
	if req.NoteID != "" {
		corpus, _, err := h.notes.BuildCorpus(c.Request.Context(), req.NoteID)
		if err != nil {
			c.JSON(http.StatusNotFound, types.DataResponse{Status: "error", Message: "note not found"})
			return
		}
		noteContext = corpus
	}

	answer, err := h.gen.Chat(c.Request.Context(), noteContext, req.Messages, types.ModelConfig{})
	if err != nil {
		respondGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.DataResponse{
		Status: "ok",
		Data: types.ChatResponse{
			Message: &types.Message{Role: types.RoleAssistant, Content: answer},
		},
	})
}
