package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/legalassist/api/http/presenter"
	"github.com/artem13815/legalassist/pkg/assistant"
)

const msgQuestionRequired = "Question is required"

type AssistantHandler struct {
	uc assistant.UseCase
}

func NewAssistantHandler(uc assistant.UseCase) *AssistantHandler { return &AssistantHandler{uc: uc} }

type askRequest struct {
	Question string `json:"question" example:"How do I file a consumer complaint?"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

// Ask relays a question to the legal assistant model.
// @Summary     Ask the legal assistant
// @Description Wraps the question in a fixed instruction prompt and returns the model's plain-text answer.
// @Description An empty model reply is answered with a fallback message, not an error.
// @Tags        assistant
// @Accept      json
// @Produce     json
// @Param       input body askRequest true "question"
// @Success     200 {object} askResponse
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     500 {object} presenter.ErrorResponse
// @Router      /legal-assistant [post]
func (h *AssistantHandler) Ask(c *fiber.Ctx) error {
	var req askRequest
	// A missing body, a non-string question and malformed JSON all fail here.
	if err := c.BodyParser(&req); err != nil || req.Question == "" {
		return presenter.Error(c, http.StatusBadRequest, msgQuestionRequired)
	}

	out, err := h.uc.Ask(c.UserContext(), req.Question)
	if err != nil {
		if errors.Is(err, assistant.ErrQuestionRequired) {
			return presenter.Error(c, http.StatusBadRequest, msgQuestionRequired)
		}
		return presenter.Error(c, http.StatusInternalServerError, assistant.ServiceErrorMessage)
	}
	return presenter.JSON(c, http.StatusOK, askResponse{Answer: out.Text})
}
