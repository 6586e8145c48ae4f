package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncastro/riobook/internal/service/miles"
)

type MilesHandler struct {
	service miles.MilesUseCase
}

func NewMilesHandler(service miles.MilesUseCase) *MilesHandler {
	return &MilesHandler{service: service}
}

func (h *MilesHandler) Register(router *gin.RouterGroup, authRequired gin.HandlerFunc) {
	router.GET("/my-miles", authRequired, h.myMiles)
	router.GET("/my-miles/transactions", authRequired, h.transactions)
}

func (h *MilesHandler) myMiles(c *gin.Context) {
	result, err := h.service.GetUserMiles(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get miles"})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *MilesHandler) transactions(c *gin.Context) {
	transactions, err := h.service.Transactions(c.Request.Context(), c.GetString(userIDKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get transactions"})
		return
	}
	c.JSON(http.StatusOK, transactions)
}
