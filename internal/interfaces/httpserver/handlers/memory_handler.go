package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"love-unlock/internal/domain/memory"
	"love-unlock/internal/interfaces/httpserver/requests"
	"love-unlock/internal/interfaces/httpserver/responses"
	"love-unlock/internal/utils/platformerrors"
)

type MemoryHandler struct {
	service memory.Service
}

func NewMemoryHandler(service memory.Service) *MemoryHandler {
	return &MemoryHandler{service: service}
}

// List godoc
// @Summary      List memories
// @Tags         memories
// @Produce      json
// @Param        code  path  string  true  "Page code"
// @Success      200  {object}  responses.MemoryListResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/pages/{code}/memories [get]
func (h *MemoryHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Param("code"))
	if err != nil {
		responses.HandleError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, responses.NewMemoryListResponse(items))
}

// Add godoc
// @Summary      Add a memory
// @Description  Requires the edit secret. Fails with 403 once the plan's memory cap is reached.
// @Tags         memories
// @Accept       json
// @Produce      json
// @Param        code           path    string                     true   "Page code"
// @Param        X-Edit-Secret  header  string                     false  "Edit secret"
// @Param        request        body    requests.AddMemoryRequest  true   "Memory"
// @Success      200  {object}  responses.MemoryCreatedResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Router       /v1/pages/{code}/memories [post]
func (h *MemoryHandler) Add(c *gin.Context) {
	var req requests.AddMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "memory_date and title are required", "f8a23647-06da-4045-a462-fba14bf502bd")
		return
	}

	created, err := h.service.Add(c.Request.Context(), c.Param("code"), editSecret(c, req.EditSecret), req.Input())
	if err != nil {
		responses.HandleError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, responses.MemoryCreatedResponse{OK: true, Item: responses.NewMemoryResponse(created)})
}
