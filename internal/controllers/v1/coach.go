package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spendwise/backend/internal/coach"
	"github.com/spendwise/backend/internal/httputil"
	"github.com/spendwise/backend/internal/models"
)

// coachService answers coach questions. Set by RegisterCoachRoutes. It
// is nil when no Gemini API key is configured.
var coachService *coach.Service

var errCoachNotConfigured = "the financial coach is not configured, set GEMINI_API_KEY"

// ChatMessage is a single message of the coach conversation.
type ChatMessage struct {
	ID        string    `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"` // UUID of the message
	CreatedAt time.Time `json:"createdAt" example:"2024-06-01T19:28:44.491514Z"`  // Time the message was sent
	Message   string    `json:"message" example:"How much did I spend on food?"`  // The message text
	FromUser  bool      `json:"fromUser" example:"true"`                          // true for the user's questions, false for the coach's answers
}

func newChatMessage(model models.ChatMessage) ChatMessage {
	return ChatMessage{
		ID:        model.ID.String(),
		CreatedAt: model.CreatedAt,
		Message:   model.Message,
		FromUser:  model.FromUser,
	}
}

// CoachQuestion is the request body for asking the coach.
type CoachQuestion struct {
	Message string `json:"message" example:"Where does most of my money go?"` // The question for the coach
}

type ChatMessageListResponse struct {
	Data  []ChatMessage `json:"data"`                                         // The conversation in chronological order
	Error *string       `json:"error" example:"the request body must not be"` // The error, if any occurred
}

type ChatMessageResponse struct {
	Data  *ChatMessage `json:"data"`                                              // The coach's answer
	Error *string      `json:"error" example:"the chat message must not be empty"` // The error, if any occurred
}

// RegisterCoachRoutes registers the routes for the financial coach with
// the RouterGroup that is passed.
func RegisterCoachRoutes(r *gin.RouterGroup, service *coach.Service) {
	coachService = service

	r.OPTIONS("/messages", OptionsCoachMessages)
	r.GET("/messages", GetCoachMessages)
	r.POST("/messages", CreateCoachMessage)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Coach
// @Success		204
// @Router			/v1/coach/messages [options]
func OptionsCoachMessages(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Get coach conversation
// @Description	Returns the full conversation with the financial coach in chronological order
// @Tags			Coach
// @Produce		json
// @Success		200	{object}	ChatMessageListResponse
// @Failure		500	{object}	ChatMessageListResponse
// @Router			/v1/coach/messages [get]
func GetCoachMessages(c *gin.Context) {
	if coachService == nil {
		c.JSON(http.StatusNotImplemented, ChatMessageListResponse{
			Error: &errCoachNotConfigured,
		})
		return
	}

	messages, err := coachService.History()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChatMessageListResponse{
			Error: &s,
		})
		return
	}

	data := make([]ChatMessage, 0, len(messages))
	for _, message := range messages {
		data = append(data, newChatMessage(message))
	}

	c.JSON(http.StatusOK, ChatMessageListResponse{Data: data})
}

// @Summary		Ask the coach
// @Description	Sends a question to the financial coach. The answer is grounded on the incomes and expenses of the last 30 days.
// @Tags			Coach
// @Accept			json
// @Produce		json
// @Success		201			{object}	ChatMessageResponse
// @Failure		400			{object}	ChatMessageResponse
// @Failure		500			{object}	ChatMessageResponse
// @Param			question	body		CoachQuestion	true	"Question"
// @Router			/v1/coach/messages [post]
func CreateCoachMessage(c *gin.Context) {
	if coachService == nil {
		c.JSON(http.StatusNotImplemented, ChatMessageResponse{
			Error: &errCoachNotConfigured,
		})
		return
	}

	var question CoachQuestion

	err := httputil.BindData(c, &question)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ChatMessageResponse{
			Error: &s,
		})
		return
	}

	answer, err := coachService.Ask(c.Request.Context(), question.Message)
	if err != nil {
		// Everything except an empty question is on the server side,
		// most likely the model API
		code := http.StatusInternalServerError
		if errors.Is(err, models.ErrChatMessageEmpty) {
			code = http.StatusBadRequest
		}

		s := err.Error()
		c.JSON(code, ChatMessageResponse{
			Error: &s,
		})
		return
	}

	data := newChatMessage(answer)
	c.JSON(http.StatusCreated, ChatMessageResponse{Data: &data})
}
