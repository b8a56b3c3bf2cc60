package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
	"airportbot/internal/http/middleware"
)

func (a *API) SaveMessagesBatch(c *gin.Context) {
	var batch []models.MessageCreate
	if !BindJSONOrError(c, &batch) {
		return
	}
	svc := a.Messages
	svc.RequestID = middleware.GetRequestID(c)
	saved, err := svc.SaveBatch(c.Request.Context(), batch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (a *API) ListMessages(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 100)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}
	msgs, err := a.Messages.List(c.Request.Context(), domain.Pagination{Limit: limit, Offset: offset}, c.Query("sender"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}
