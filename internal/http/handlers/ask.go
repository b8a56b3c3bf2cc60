package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
	"airportbot/internal/http/middleware"
)

// AskQuestion answers a question; user and session come from the user-id and
// session-id headers, with the token's user id as fallback.
func (a *API) AskQuestion(c *gin.Context) {
	var req models.AskRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	rc := domain.RequestContext{
		UserID:    c.GetHeader("user-id"),
		SessionID: c.GetHeader("session-id"),
	}
	if rc.UserID == "" {
		rc.UserID = middleware.GetUserID(c)
	}

	svc := a.Ask
	svc.RequestID = middleware.GetRequestID(c)
	resp, err := svc.Ask(c.Request.Context(), req.Question, rc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (a *API) ListResponses(c *gin.Context) {
	skip, ok := queryInt(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit", 100)
	if !ok {
		return
	}
	svc := a.Ask
	svc.RequestID = middleware.GetRequestID(c)
	out, err := svc.List(c.Request.Context(), models.ResponseFilter{
		Skip:      skip,
		Limit:     limit,
		UserID:    c.Query("user_id"),
		SessionID: c.Query("session_id"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) GetResponse(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_id", "invalid response id", nil)
		return
	}
	resp, err := a.Ask.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
