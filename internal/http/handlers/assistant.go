package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"airportbot/internal/domain/models"
	"airportbot/internal/http/middleware"
	"airportbot/internal/services"
)

func (a *API) assistant(c *gin.Context) services.AssistantService {
	svc := a.Assistant
	svc.RequestID = middleware.GetRequestID(c)
	return svc
}

func (a *API) Intro(c *gin.Context) {
	language := c.DefaultQuery("language", models.LanguagePersian)
	resp, err := a.assistant(c).Intro(c.Request.Context(), language)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (a *API) Chat(c *gin.Context) {
	var req models.ChatRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	resp, err := a.assistant(c).ChatTurn(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TestAvashow takes the text from ?text_input= (or a JSON body of the same
// name) and reports the synthesized file.
func (a *API) TestAvashow(c *gin.Context) {
	text := c.Query("text_input")
	if strings.TrimSpace(text) == "" && c.Request.ContentLength > 0 {
		var body struct {
			TextInput string `json:"text_input"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			text = body.TextInput
		}
	}
	res, err := a.assistant(c).TestAvashow(c.Request.Context(), text)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
