package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airportbot/internal/http/middleware"
)

// GetTripItineraryPDF returns the trip itinerary inline.
func (a *API) GetTripItineraryPDF(c *gin.Context) {
	svc := a.Docs
	svc.RequestID = middleware.GetRequestID(c)
	pdfBytes, filename, err := svc.GenerateItinerary(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
