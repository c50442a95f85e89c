package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"love-unlock/internal/domain/page"
	"love-unlock/internal/domain/unlock"
	"love-unlock/internal/interfaces/httpserver/requests"
	"love-unlock/internal/interfaces/httpserver/responses"
	"love-unlock/internal/utils/platformerrors"
)

// AdminHandler serves operator endpoints guarded by the admin key.
type AdminHandler struct {
	pages   page.Service
	unlocks unlock.Service
	log     zerolog.Logger
}

func NewAdminHandler(pages page.Service, unlocks unlock.Service, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		pages:   pages,
		unlocks: unlocks,
		log:     log.With().Str("component", "admin-handler").Logger(),
	}
}

// OverridePlan godoc
// @Summary      Set a page plan
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        X-Admin-Key  header  string                       true  "Admin key"
// @Param        request      body    requests.AdminUnlockRequest  true  "Code and plan"
// @Success      200  {object}  responses.PlanOverrideResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/admin/unlock [post]
func (h *AdminHandler) OverridePlan(c *gin.Context) {
	var req requests.AdminUnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "Missing slug or plan", "ee9a7eb7-0be4-4f0c-8ef8-62d8e5793b42")
		return
	}

	target, err := h.pages.OverridePlan(c.Request.Context(), req.PageCode(), req.Plan)
	if err != nil {
		responses.HandleError(c, err, "Database update failed")
		return
	}
	h.log.Info().Str("plan", string(target)).Msg("admin plan override")
	c.JSON(http.StatusOK, responses.PlanOverrideResponse{OK: true, Plan: target})
}

// ListLedger godoc
// @Summary      List unlock requests
// @Tags         admin
// @Produce      json
// @Param        X-Admin-Key  header  string  true   "Admin key"
// @Param        code         query   string  false  "Filter by page code"
// @Param        limit        query   int     false  "Maximum rows (default 50, max 500)"
// @Param        offset       query   int     false  "Rows to skip"
// @Success      200  {object}  responses.LedgerListResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /v1/admin/unlock-requests [get]
func (h *AdminHandler) ListLedger(c *gin.Context) {
	filter := unlock.Filter{Code: c.Query("code")}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "limit must be a positive integer", "eb5f9422-9801-426d-a607-530b74dbda65")
			return
		}
		filter.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "offset must be a positive integer", "630804ba-060a-438b-9a02-886279b60244")
			return
		}
		filter.Offset = offset
	}

	items, err := h.unlocks.List(c.Request.Context(), filter)
	if err != nil {
		responses.HandleError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, responses.LedgerListResponse{Items: items})
}
