package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minhtran-dev/studynotes-be/service"
	"github.com/minhtran-dev/studynotes-be/types"
)

type GenerateHandler struct {
	notes   *service.NoteService
	gen     *service.GenerationService
	content *service.StudyContentService
}

func NewGenerateHandler(notes *service.NoteService, gen *service.GenerationService, content *service.StudyContentService) *GenerateHandler {
	return &GenerateHandler{
		notes:   notes,
		gen:     gen,
		content: content,
	}
}

// HandleGenerate produces the requested content kinds for a note and
// persists each one as it completes. A quota error aborts the remaining
// kinds immediately; results already saved stay saved.
func (h *GenerateHandler) HandleGenerate(c *gin.Context) {
	noteID := c.Param("id")

	var req types.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Kinds) == 0 {
		c.JSON(http.StatusBadRequest, types.DataResponse{Status: "error", Message: "invalid request body"})
		return
	}
	if req.TargetCount <= 0 {
		req.TargetCount = 10
	}

	corpus, docs, err := h.notes.BuildCorpus(c.Request.Context(), noteID)
	if err != nil {
		c.JSON(http.StatusNotFound, types.DataResponse{Status: "error", Message: "note not found"})
		return
	}

	ctx := c.Request.Context()
	for _, kind := range req.Kinds {
		genReq := types.GenerationRequest{
			Kind:        types.ContentKind(kind),
			Corpus:      corpus,
			Documents:   docs,
			DetailLevel: types.DetailLevel(req.DetailLevel),
			TargetCount: req.TargetCount,
			Model:       types.ModelConfig{Model: req.Model},
		}

		var update types.StudyContentUpdate
		switch genReq.Kind {
		case types.KindSummary:
			has, herr := h.content.HasSummary(ctx, noteID)
			if herr != nil {
				// Fail before paying for a generation the save would lose.
				c.JSON(http.StatusInternalServerError, types.DataResponse{Status: "error", Message: "failed to load study content"})
				return
			}
			if has {
				// An existing summary is never regenerated.
				continue
			}
			summary, gerr := h.gen.GenerateSummary(ctx, genReq)
			if gerr != nil {
				respondGenerationError(c, gerr)
				return
			}
			update.Summary = &summary
		case types.KindFlashcards:
			cards, gerr := h.gen.GenerateFlashcards(ctx, genReq)
			if gerr != nil {
				respondGenerationError(c, gerr)
				return
			}
			update.Flashcards = &cards
		case types.KindQuiz:
			questions, gerr := h.gen.GenerateQuiz(ctx, genReq)
			if gerr != nil {
				respondGenerationError(c, gerr)
				return
			}
			update.QuizQuestions = &questions
		case types.KindExercises:
			exercises, gerr := h.gen.GenerateExercises(ctx, genReq)
			if gerr != nil {
				respondGenerationError(c, gerr)
				return
			}
			update.Exercises = &exercises
		case types.KindTopics:
			topics, gerr := h.gen.GenerateTopics(ctx, genReq)
			if gerr != nil {
				respondGenerationError(c, gerr)
				return
			}
			update.Topics = &topics
		default:
			c.JSON(http.StatusBadRequest, types.DataResponse{Status: "error", Message: "unknown content kind: " + kind})
			return
		}

		if err := h.content.Save(ctx, noteID, update); err != nil {
			c.JSON(http.StatusInternalServerError, types.DataResponse{Status: "error", Message: "failed to save study content"})
			return
		}
	}

	content, err := h.content.Get(ctx, noteID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{Status: "error", Message: "failed to load study content"})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: "ok", Data: content})
}

func (h *GenerateHandler) HandleGetStudyContent(c *gin.Context) {
	content, err := h.content.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.DataResponse{Status: "error", Message: "failed to load study content"})
		return
	}
	if content == nil {
		c.JSON(http.StatusNotFound, types.DataResponse{Status: "error", Message: "no study content yet"})
		return
	}
	c.JSON(http.StatusOK, types.DataResponse{Status: "ok", Data: content})
}
