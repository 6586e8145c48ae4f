package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ncastro/riobook/internal/service/trips"
)

type TripHandler struct {
	service trips.TripUseCase
}

func NewTripHandler(service trips.TripUseCase) *TripHandler {
	return &TripHandler{service: service}
}

func (h *TripHandler) Register(router *gin.RouterGroup) {
	router.GET("/trips", h.search)
	router.GET("/trips/connections", h.connections)
	router.GET("/trips/prices-by-date", h.pricesByDate)
	router.GET("/trips/:id", h.get)
	router.GET("/operators", h.operators)
}

func (h *TripHandler) search(c *gin.Context) {
	input := trips.SearchInput{
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
		Sort:        c.Query("sort"),
	}
	if types := c.Query("types"); types != "" {
		input.Types = strings.Split(types, ",")
	}

	var err error
	if input.MinPrice, err = priceParam(c, "minPrice"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minPrice"})
		return
	}
	if input.MaxPrice, err = priceParam(c, "maxPrice"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxPrice"})
		return
	}

	result, err := h.service.Search(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, trips.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search trips"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TripHandler) get(c *gin.Context) {
	trip, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, trips.ErrTripNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "trip not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get trip"})
		return
	}
	c.JSON(http.StatusOK, trip)
}

func (h *TripHandler) connections(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}

	connections, err := h.service.FindConnections(c.Request.Context(), origin, destination, c.Query("date"))
	if err != nil {
		if errors.Is(err, trips.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to find connections"})
		return
	}
	c.JSON(http.StatusOK, connections)
}

func (h *TripHandler) pricesByDate(c *gin.Context) {
	origin := c.Query("origin")
	destination := c.Query("destination")
	if origin == "" || destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin and destination are required"})
		return
	}

	prices, err := h.service.PricesByDateRange(c.Request.Context(), origin, destination, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		if errors.Is(err, trips.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get prices"})
		return
	}
	c.JSON(http.StatusOK, prices)
}

func (h *TripHandler) operators(c *gin.Context) {
	operators, err := h.service.Operators(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get operators"})
		return
	}
	c.JSON(http.StatusOK, operators)
}

func priceParam(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
