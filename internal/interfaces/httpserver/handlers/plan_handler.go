package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"love-unlock/internal/domain/plan"
	"love-unlock/internal/interfaces/httpserver/responses"
)

type PlanHandler struct{}

func NewPlanHandler() *PlanHandler {
	return &PlanHandler{}
}

// List godoc
// @Summary      Plan matrix
// @Description  Features, limits and prices of every tier.
// @Tags         plans
// @Produce      json
// @Success      200  {object}  responses.PlansResponse
// @Router       /v1/plans [get]
func (h *PlanHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, responses.PlansResponse{Items: plan.All()})
}
