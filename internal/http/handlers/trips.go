package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"airportbot/internal/domain"
	"airportbot/internal/domain/models"
	"airportbot/internal/http/middleware"
)

func (a *API) CreateTrip(c *gin.Context) {
	var in models.TripCreate
	if !BindJSONOrError(c, &in) {
		return
	}
	svc := a.Trips
	svc.RequestID = middleware.GetRequestID(c)
	trip, err := svc.Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trip)
}

func (a *API) ListTrips(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 20)
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset", 0)
	if !ok {
		return
	}
	trips, err := a.Trips.List(c.Request.Context(), domain.Pagination{Limit: limit, Offset: offset})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

func (a *API) GetTrip(c *gin.Context) {
	trip, err := a.Trips.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (a *API) DeleteTrip(c *gin.Context) {
	svc := a.Trips
	svc.RequestID = middleware.GetRequestID(c)
	if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Trip deleted", "id": c.Param("id")})
}
