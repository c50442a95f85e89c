package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"love-unlock/internal/domain/template"
	"love-unlock/internal/infrastructure/metrics"
	"love-unlock/internal/interfaces/httpserver/requests"
	"love-unlock/internal/interfaces/httpserver/responses"
	"love-unlock/internal/utils/platformerrors"
)

// multipartOverhead leaves room for form boundaries and the edit_secret field.
const multipartOverhead = 64 << 10

type TemplateHandler struct {
	service  template.Service
	maxBytes int64
	log      zerolog.Logger
}

func NewTemplateHandler(service template.Service, maxBytes int64, log zerolog.Logger) *TemplateHandler {
	return &TemplateHandler{
		service:  service,
		maxBytes: maxBytes,
		log:      log.With().Str("component", "template-handler").Logger(),
	}
}

// List godoc
// @Summary      List saved templates
// @Description  Requires the templates feature on the page's plan.
// @Tags         templates
// @Produce      json
// @Param        code  path  string  true  "Page code"
// @Success      200  {object}  responses.TemplateListResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /v1/pages/{code}/templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Param("code"))
	if err != nil {
		responses.HandleError(c, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, responses.TemplateListResponse{Items: items})
}

// Save godoc
// @Summary      Save a rendered template
// @Tags         templates
// @Accept       json
// @Produce      json
// @Param        code           path    string                        true   "Page code"
// @Param        X-Edit-Secret  header  string                        false  "Edit secret"
// @Param        request        body    requests.SaveTemplateRequest  true   "PNG data URL"
// @Success      200  {object}  responses.ImageResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Router       /v1/pages/{code}/templates [post]
func (h *TemplateHandler) Save(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes*2+multipartOverhead)

	var req requests.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "Missing image_data_url", "3febb3c9-909c-4b0e-9001-b4d9da855ddf")
		return
	}

	saved, err := h.service.SaveRendered(c.Request.Context(), c.Param("code"), editSecret(c, req.EditSecret), req.Input())
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("template", "error").Inc()
		responses.HandleError(c, err, "Upload failed")
		return
	}
	metrics.UploadsTotal.WithLabelValues("template", "ok").Inc()
	c.JSON(http.StatusOK, responses.ImageResponse{OK: true, ImageURL: saved.ImageURL})
}

// Upload godoc
// @Summary      Upload a PNG template
// @Tags         templates
// @Accept       multipart/form-data
// @Produce      json
// @Param        code         path      string  true   "Page code"
// @Param        file         formData  file    true   "PNG image"
// @Param        edit_secret  formData  string  false  "Edit secret"
// @Success      200  {object}  responses.ImageResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Router       /v1/pages/{code}/templates/upload [post]
func (h *TemplateHandler) Upload(c *gin.Context) {
	data, ok := h.readFile(c)
	if !ok {
		return
	}

	saved, err := h.service.UploadPNG(c.Request.Context(), c.Param("code"), editSecret(c, c.PostForm("edit_secret")), data)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("template", "error").Inc()
		responses.HandleError(c, err, "Upload failed")
		return
	}
	metrics.UploadsTotal.WithLabelValues("template", "ok").Inc()
	c.JSON(http.StatusOK, responses.ImageResponse{OK: true, ImageURL: saved.ImageURL})
}

// UploadPhoto godoc
// @Summary      Upload a photo
// @Description  Accepts PNG, JPEG and WebP. The type is sniffed from the content.
// @Tags         templates
// @Accept       multipart/form-data
// @Produce      json
// @Param        code         path      string  true   "Page code"
// @Param        file         formData  file    true   "Image"
// @Param        edit_secret  formData  string  false  "Edit secret"
// @Success      200  {object}  responses.PhotoResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Failure      401  {object}  responses.ErrorResponse
// @Failure      403  {object}  responses.ErrorResponse
// @Router       /v1/pages/{code}/photos [post]
func (h *TemplateHandler) UploadPhoto(c *gin.Context) {
	data, ok := h.readFile(c)
	if !ok {
		return
	}

	url, err := h.service.UploadPhoto(c.Request.Context(), c.Param("code"), editSecret(c, c.PostForm("edit_secret")), data)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("photo", "error").Inc()
		responses.HandleError(c, err, "Upload failed")
		return
	}
	metrics.UploadsTotal.WithLabelValues("photo", "ok").Inc()
	c.JSON(http.StatusOK, responses.PhotoResponse{OK: true, PhotoURL: url})
}

// readFile pulls the "file" part. It reads one byte past the limit so the service can reject oversize files.
func (h *TemplateHandler) readFile(c *gin.Context) ([]byte, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "File too large", "bf6e11c4-5fa5-4d91-b783-28384927f0e4")
			return nil, false
		}
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "Missing file", "13564d46-f311-492c-a35c-4de14d4221e2")
		return nil, false
	}

	f, err := header.Open()
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "Unreadable file", "7782fc45-e3b0-49de-a0ef-f98f55def1cc")
		return nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "Unreadable file", "2ea14190-eeaf-4d37-b216-9265857b4f3b")
		return nil, false
	}
	return data, true
}
