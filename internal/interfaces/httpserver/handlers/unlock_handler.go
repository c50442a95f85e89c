package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"love-unlock/internal/domain/unlock"
	"love-unlock/internal/interfaces/httpserver/middlewares"
	"love-unlock/internal/interfaces/httpserver/requests"
	"love-unlock/internal/interfaces/httpserver/responses"
	"love-unlock/internal/utils/platformerrors"
)

type UnlockHandler struct {
	service unlock.Service
}

func NewUnlockHandler(service unlock.Service) *UnlockHandler {
	return &UnlockHandler{service: service}
}

// Submit godoc
// @Summary      Unlock a plan with a payment transaction id
// @Description  Rate limited per client address and page code. Each transaction id unlocks at most one page.
// @Tags         unlock
// @Accept       json
// @Produce      json
// @Param        request  body      requests.UnlockRequest  true  "Unlock claim"
// @Success      200      {object}  unlock.Result
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      404      {object}  responses.ErrorResponse
// @Failure      409      {object}  responses.ErrorResponse
// @Failure      429      {object}  responses.ErrorResponse
// @Failure      500      {object}  responses.ErrorResponse
// @Router       /v1/unlock/request [post]
func (h *UnlockHandler) Submit(c *gin.Context) {
	var req requests.UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "09f8b38d-e84e-413a-8c02-bb7c29b9577b")
		return
	}

	result, err := h.service.Submit(c.Request.Context(), req.Submission(middlewares.ClientIP(c), c.Request.UserAgent()))
	if err != nil {
		responses.HandleError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, result)
}
