package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airportbot/internal/domain/models"
	"airportbot/internal/http/middleware"
)

func (a *API) ExtractInfo(c *gin.Context) {
	var req models.ExtractInfoRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	svc := a.Extract
	svc.RequestID = middleware.GetRequestID(c)
	out, err := svc.Extract(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
