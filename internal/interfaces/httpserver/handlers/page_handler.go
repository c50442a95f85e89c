package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"love-unlock/internal/domain/page"
	"love-unlock/internal/infrastructure/auth"
	"love-unlock/internal/interfaces/httpserver/requests"
	"love-unlock/internal/interfaces/httpserver/responses"
	"love-unlock/internal/utils/platformerrors"
)

// PageHandler serves page lifecycle endpoints.
type PageHandler struct {
	service page.Service
	log     zerolog.Logger
}

func NewPageHandler(service page.Service, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		service: service,
		log:     log.With().Str("component", "page-handler").Logger(),
	}
}

// Create godoc
// @Summary      Create a page
// @Description  Creates a FREE page owned by the caller and returns its code and one-time edit secret.
// @Tags         pages
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      requests.CreatePageRequest  true  "Page"
// @Success      200      {object}  page.Created
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      401      {object}  responses.ErrorResponse
// @Router       /v1/pages [post]
func (h *PageHandler) Create(c *gin.Context) {
	owner, ok := auth.OwnerFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "Unauthorized (no token)", "e3220efb-03a7-49aa-9096-c409ff042b4e")
		return
	}

	var req requests.CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "7cbb72c6-6dc8-470f-bcf1-329f6161ff65")
		return
	}
	in, err := req.Input()
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "reveal_at must be RFC3339", "cb18ad4d-f3d6-4f8a-b24d-0012e6535bab")
		return
	}

	created, err := h.service.Create(c.Request.Context(), owner, in)
	if err != nil {
		responses.HandleError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, created)
}

// ListMine godoc
// @Summary      List my pages
// @Tags         pages
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  responses.PageListResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /v1/pages [get]
func (h *PageHandler) ListMine(c *gin.Context) {
	owner, ok := auth.OwnerFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "Unauthorized", "e85aabe0-40a0-454b-80d5-a1c20426147a")
		return
	}
	items, err := h.service.ListByOwner(c.Request.Context(), owner)
	if err != nil {
		responses.HandleError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, responses.PageListResponse{Items: items})
}

// Get godoc
// @Summary      Public page
// @Description  The message is omitted for stealth pages unless a valid capability token is sent, and while reveal_at is in the future.
// @Tags         pages
// @Produce      json
// @Param        code               path    string  true   "Page code"
// @Param        X-Page-Capability  header  string  false  "Capability token from PIN verification"
// @Param        token              query   string  false  "Capability token"
// @Success      200  {object}  page.Public
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/pages/{code} [get]
func (h *PageHandler) Get(c *gin.Context) {
	public, err := h.service.GetPublic(c.Request.Context(), c.Param("code"), capabilityToken(c))
	if err != nil {
		responses.HandleError(c, err, "Not found")
		return
	}
	c.JSON(http.StatusOK, public)
}

// VerifyPIN godoc
// @Summary      Verify a page PIN
// @Description  Returns a short-lived capability token on success and {ok:false} with 401 otherwise.
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        code     path  string                     true  "Page code"
// @Param        request  body  requests.VerifyPINRequest  true  "PIN"
// @Success      200  {object}  responses.PINResponse
// @Failure      401  {object}  responses.PINResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/pages/{code}/pin [post]
func (h *PageHandler) VerifyPIN(c *gin.Context) {
	var req requests.VerifyPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "116d86a2-4057-4982-ae9f-4ca16b7c44cc")
		return
	}

	grant, err := h.service.VerifyPIN(c.Request.Context(), c.Param("code"), req.PIN)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized) {
			c.JSON(http.StatusUnauthorized, responses.PINResponse{OK: false})
			return
		}
		responses.HandleError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, responses.PINResponse{OK: true, Token: grant.Token, ExpiresAt: &grant.ExpiresAt})
}

// UpdateSettings godoc
// @Summary      Update page settings
// @Description  Requires the edit secret. An empty reveal_at clears the reveal time.
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        code           path    string                          true   "Page code"
// @Param        X-Edit-Secret  header  string                          false  "Edit secret"
// @Param        request        body    requests.UpdateSettingsRequest  true   "Settings"
// @Success      200  {object}  responses.OKResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Router       /v1/pages/{code} [patch]
func (h *PageHandler) UpdateSettings(c *gin.Context) {
	var req requests.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "62d8df0f-d944-4902-a667-b6ec9210c125")
		return
	}
	update, err := req.Update()
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "reveal_at must be RFC3339", "09f4fbe4-ea74-432f-b49a-215be57ac137")
		return
	}

	if err := h.service.UpdateSettings(c.Request.Context(), c.Param("code"), editSecret(c, req.EditSecret), update); err != nil {
		responses.HandleError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, responses.OKResponse{OK: true})
}

// Respond godoc
// @Summary      Record the partner's answer
// @Tags         pages
// @Accept       json
// @Produce      json
// @Param        code     path  string                   true  "Page code"
// @Param        request  body  requests.RespondRequest  true  "YES or NO"
// @Success      200  {object}  responses.OKResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/pages/{code}/respond [post]
func (h *PageHandler) Respond(c *gin.Context) {
	var req requests.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "Invalid choice", "7d737fd4-e1dc-43bf-ba8e-86dd58f9fb6b")
		return
	}
	if err := h.service.Respond(c.Request.Context(), c.Param("code"), req.Choice); err != nil {
		responses.HandleError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, responses.OKResponse{OK: true})
}

// RecordView godoc
// @Summary      Count a page view
// @Tags         pages
// @Produce      json
// @Param        code  path  string  true  "Page code"
// @Success      200  {object}  responses.ViewResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/pages/{code}/views [post]
func (h *PageHandler) RecordView(c *gin.Context) {
	stats, err := h.service.RecordView(c.Request.Context(), c.Param("code"))
	if err != nil {
		responses.HandleError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, responses.ViewResponse{OK: true, ViewStats: stats})
}

// Delete godoc
// @Summary      Delete a page
// @Description  Only the owner may delete. Memories and templates go with it.
// @Tags         pages
// @Security     BearerAuth
// @Produce      json
// @Param        code  path  string  true  "Page code"
// @Success      200  {object}  responses.OKResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/pages/{code} [delete]
func (h *PageHandler) Delete(c *gin.Context) {
	owner, ok := auth.OwnerFromContext(c)
	if !ok {
		responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized, "Unauthorized", "cb8f1b32-0f97-4574-b3be-d6ada4475681")
		return
	}
	if err := h.service.Delete(c.Request.Context(), c.Param("code"), owner); err != nil {
		responses.HandleError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, responses.OKResponse{OK: true})
}
