package template

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"love-unlock/internal/domain"
	"love-unlock/internal/domain/page"
	"love-unlock/internal/domain/plan"
	"love-unlock/internal/utils/idgen"
	"love-unlock/internal/utils/platformerrors"
)

var photoMIMEs = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

type Service interface {
	List(ctx context.Context, code string) ([]*Template, error)
	SaveRendered(ctx context.Context, code string, editSecret string, in SaveInput) (*Template, error)
	UploadPNG(ctx context.Context, code string, editSecret string, data []byte) (*Template, error)
	UploadPhoto(ctx context.Context, code string, editSecret string, data []byte) (string, error)
}

type service struct {
	pages    domain.PageResolver
	repo     Repository
	storage  Storage
	maxBytes int64
	log      zerolog.Logger
}

func NewService(pages domain.PageResolver, repo Repository, storage Storage, maxBytes int64, log zerolog.Logger) Service {
	return &service{
		pages:    pages,
		repo:     repo,
		storage:  storage,
		maxBytes: maxBytes,
		log:      log.With().Str("component", "template-service").Logger(),
	}
}

func (s *service) List(ctx context.Context, code string) ([]*Template, error) {
	p, err := s.pages.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := requireTemplates(ctx, p); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByPage(ctx, p.ID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list templates")
	}
	return items, nil
}

func (s *service) SaveRendered(ctx context.Context, code string, editSecret string, in SaveInput) (*Template, error) {
	if !strings.HasPrefix(in.ImageDataURL, PNGDataURLPrefix) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Missing slug or imageDataUrl", nil, "3f8a1c5e-7b2d-4e9a-b6c1-8d4f2a7e5c93")
	}
	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(in.ImageDataURL, PNGDataURLPrefix))
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Invalid image data", err, "a4d7e2b9-1c6f-4a3e-8b5d-7f2c9e4a1b68")
	}
	if len(in.Meta) > 0 && !json.Valid(in.Meta) {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "meta must be valid JSON", nil, "c2b9f4e1-8a3d-4c7b-9e6f-1d5a8c3b7e24")
	}

	p, err := s.authorizeTemplates(ctx, code, editSecret)
	if err != nil {
		return nil, err
	}
	return s.storeTemplate(ctx, p, "template-", data, in.PhotoURL, in.Meta)
}

func (s *service) UploadPNG(ctx context.Context, code string, editSecret string, data []byte) (*Template, error) {
	p, err := s.authorizeTemplates(ctx, code, editSecret)
	if err != nil {
		return nil, err
	}
	return s.storeTemplate(ctx, p, "", data, nil, nil)
}

func (s *service) UploadPhoto(ctx context.Context, code string, editSecret string, data []byte) (string, error) {
	p, err := s.authorizeTemplates(ctx, code, editSecret)
	if err != nil {
		return "", err
	}
	if err := s.checkSize(ctx, data); err != nil {
		return "", err
	}

	contentType := mimetype.Detect(data).String()
	ext, ok := photoMIMEs[contentType]
	if !ok {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Invalid file type", nil, "5e1b8d3a-9f4c-4b2e-a7d6-3c8f1e5b9a72")
	}

	key := fmt.Sprintf("%s/photo-%s.%s", p.Code, idgen.NewObjectID(), ext)
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "Upload failed", err, "7a3c9e1f-2b5d-4e8a-b1c7-9d4f6a2e8b53")
	}
	return s.storage.PublicURL(key), nil
}

func (s *service) storeTemplate(ctx context.Context, p *page.Page, prefix string, data []byte, photoURL *string, meta json.RawMessage) (*Template, error) {
	if err := s.checkSize(ctx, data); err != nil {
		return nil, err
	}
	if mimetype.Detect(data).String() != "image/png" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Template must be a PNG image", nil, "b8e2d5a1-4c7f-4a9b-8e3d-6f1c5a9e2b47")
	}

	key := fmt.Sprintf("%s/%s%s.png", p.Code, prefix, idgen.NewObjectID())
	if err := s.storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), "image/png"); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeExternal, "Upload failed", err, "d1f6a3c8-5e2b-4d7a-9c1e-8b4f2d6a3e95")
	}

	t := &Template{
		PageID:   p.ID,
		Code:     p.Code,
		ImageURL: s.storage.PublicURL(key),
		PhotoURL: photoURL,
		Meta:     meta,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "save template")
	}

	s.log.Info().Str("code", p.Code).Str("key", key).Msg("template stored")
	return t, nil
}

func (s *service) authorizeTemplates(ctx context.Context, code string, editSecret string) (*page.Page, error) {
	p, err := s.pages.Authorize(ctx, code, editSecret)
	if err != nil {
		return nil, err
	}
	if err := requireTemplates(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) checkSize(ctx context.Context, data []byte) error {
	if len(data) == 0 {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Missing file", nil, "f4a9c2e7-6b1d-4e3a-8f5c-2a7d9b4e1c86")
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "File too large", nil, "2c7e4b9a-1f3d-4a6c-b8e2-5d9f1a4c7e38")
	}
	return nil
}

func requireTemplates(ctx context.Context, p *page.Page) error {
	if !plan.Has(p.Plan, plan.FeatureTemplates) {
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden, "Templates require ROM99 or ULT199", nil, "8b5d1e4a-7c2f-4b9e-a3d6-1e8c4f7a2b59", map[string]any{"plan": string(p.Plan)})
	}
	return nil
}
