package page

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"love-unlock/internal/domain/codes"
	"love-unlock/internal/domain/plan"
	"love-unlock/internal/utils/platformerrors"
)

// PINCost is the bcrypt cost used for page PINs.
const PINCost = 10

// Service is the page use-case surface.
type Service interface {
	Create(ctx context.Context, ownerID string, in CreateInput) (Created, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Summary, error)
	GetPublic(ctx context.Context, code string, capabilityToken string) (Public, error)
	VerifyPIN(ctx context.Context, code string, pin string) (Capability, error)
	UpdateSettings(ctx context.Context, code string, editSecret string, update SettingsUpdate) error
	Respond(ctx context.Context, code string, choice string) error
	RecordView(ctx context.Context, code string) (ViewStats, error)
	Delete(ctx context.Context, code string, ownerID string) error
	OverridePlan(ctx context.Context, code string, rawPlan string) (plan.Plan, error)
	// Authorize resolves the page an edit secret grants write access to.
	Authorize(ctx context.Context, code string, editSecret string) (*Page, error)
	Lookup(ctx context.Context, code string) (*Page, error)
}

type service struct {
	repo       Repository
	capability CapabilityIssuer
	generator  *codes.Generator
	now        func() time.Time
	log        zerolog.Logger
}

func NewService(repo Repository, capability CapabilityIssuer, log zerolog.Logger) Service {
	return &service{
		repo:       repo,
		capability: capability,
		generator:  codes.NewGenerator(repo.CodeExists),
		now:        time.Now,
		log:        log.With().Str("component", "page-service").Logger(),
	}
}

func (s *service) Create(ctx context.Context, ownerID string, in CreateInput) (Created, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Created{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "Unauthorized (no token)", nil, "82608d79-c4c2-41d6-a7fa-339f7e97b99b")
	}

	displayName := strings.TrimSpace(in.DisplayName)
	message := strings.TrimSpace(in.Message)
	pin := strings.TrimSpace(in.PIN)

	if displayName == "" || message == "" {
		return Created{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Missing display_name or message", nil, "64052c64-a511-4700-89aa-e8d9a45b6202")
	}
	if len(pin) < MinPINLength {
		return Created{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "PIN must be at least 4 digits", nil, "a4430a94-082f-4610-907f-46a3a4c8b57d")
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(pin), PINCost)
	if err != nil {
		return Created{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "hash pin", err, "14667875-6002-4213-a119-1e9b8545ed1c")
	}

	secret, err := codes.NewSecret()
	if err != nil {
		return Created{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "generate edit secret", err, "105e35b0-e9b7-4e29-8560-a8da732942d4")
	}

	code, err := s.generator.Unique(ctx)
	if err != nil {
		return Created{}, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerDomain, err, "Code generation failed", "7786158e-7654-464a-abc0-db4287eeac6e")
	}

	var subtitle *string
	if trimmed := strings.TrimSpace(in.Subtitle); trimmed != "" {
		subtitle = &trimmed
	}

	p := &Page{
		Code:           code,
		OwnerID:        ownerID,
		DisplayName:    displayName,
		Subtitle:       subtitle,
		Message:        message,
		PinHash:        string(pinHash),
		Plan:           plan.Free,
		StealthEnabled: true,
		RevealAt:       in.RevealAt,
		Watermark:      true,
		EditSecret:     secret,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Created{}, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "create page")
	}

	s.log.Info().Str("code", code).Str("owner_id", ownerID).Msg("page created")
	return Created{Code: code, EditSecret: secret}, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]Summary, error) {
	pages, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list pages")
	}
	out := make([]Summary, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Summary())
	}
	return out, nil
}

func (s *service) GetPublic(ctx context.Context, code string, capabilityToken string) (Public, error) {
	p, err := s.Lookup(ctx, code)
	if err != nil {
		return Public{}, err
	}

	now := s.now()
	normalized := plan.Normalize(string(p.Plan))
	out := Public{
		Code:               p.Code,
		DisplayName:        p.DisplayName,
		Subtitle:           p.Subtitle,
		Plan:               normalized,
		Features:           plan.Features(normalized),
		StealthEnabled:     p.StealthEnabled,
		RevealAt:           p.RevealAt,
		Watermark:          p.Watermark,
		Views:              p.Views,
		PartnerChoice:      p.PartnerChoice,
		PartnerRespondedAt: p.PartnerRespondedAt,
		CreatedAt:          p.CreatedAt,
	}

	if p.RevealAt != nil && now.Before(*p.RevealAt) {
		sealed := *p.RevealAt
		out.SealedUntil = &sealed
		out.Locked = true
		return out, nil
	}

	if p.StealthEnabled && !s.capabilityValid(capabilityToken, p.Code) {
		out.Locked = true
		return out, nil
	}

	message := p.Message
	out.Message = &message
	return out, nil
}

func (s *service) capabilityValid(token string, code string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		return false
	}
	if err := s.capability.Verify(token, code); err != nil {
		s.log.Debug().Err(err).Str("code", code).Msg("capability rejected")
		return false
	}
	return true
}

func (s *service) VerifyPIN(ctx context.Context, code string, pin string) (Capability, error) {
	pin = strings.TrimSpace(pin)
	if pin == "" {
		return Capability{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Missing PIN", nil, "ac2d9594-5360-44de-87d4-be51ff8d54a8")
	}

	p, err := s.Lookup(ctx, code)
	if err != nil {
		return Capability{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PinHash), []byte(pin)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return Capability{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "Invalid PIN", nil, "d6b19a11-71be-43d4-b1de-77c98f5a416c")
		}
		return Capability{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "compare pin", err, "7c2567a4-d0b4-47cf-8845-fce1b571a7ed")
	}

	grant, err := s.capability.Issue(p.Code)
	if err != nil {
		return Capability{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "issue capability", err, "137f4bc2-71d0-44c7-a70f-35f0919229dc")
	}
	return grant, nil
}

func (s *service) UpdateSettings(ctx context.Context, code string, editSecret string, update SettingsUpdate) error {
	p, err := s.Authorize(ctx, code, editSecret)
	if err != nil {
		return err
	}
	if update.Empty() {
		return nil
	}
	if err := s.repo.UpdateSettings(ctx, p.Code, update); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "update page settings")
	}
	return nil
}

func (s *service) Respond(ctx context.Context, code string, choice string) error {
	code = codes.NormalizeCode(code)
	if code == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Invalid code", nil, "61146990-cc45-4edd-b654-3dcd8709c052")
	}

	choice = strings.ToUpper(strings.TrimSpace(choice))
	if choice != ChoiceYes && choice != ChoiceNo {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Invalid choice", nil, "e1d3f57a-a476-4586-bd55-4f9739e1c438")
	}

	if err := s.repo.RecordResponse(ctx, code, choice, s.now().UTC()); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "record response")
	}
	return nil
}

func (s *service) RecordView(ctx context.Context, code string) (ViewStats, error) {
	code = codes.NormalizeCode(code)
	if code == "" {
		return ViewStats{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Missing code", nil, "7ca429b9-2c70-42ab-9604-c4c73beb7b5a")
	}

	stats, err := s.repo.BumpViews(ctx, code, s.now().UTC())
	if err != nil {
		return ViewStats{}, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "record view")
	}
	return stats, nil
}

func (s *service) Delete(ctx context.Context, code string, ownerID string) error {
	p, err := s.Lookup(ctx, code)
	if err != nil {
		return err
	}
	if p.OwnerID != ownerID {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden, "Forbidden (not your page)", nil, "d3234874-0ac1-454d-be96-9a1bc2860d31")
	}
	if err := s.repo.Delete(ctx, p.ID); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "delete page")
	}
	s.log.Info().Str("code", p.Code).Str("owner_id", ownerID).Msg("page deleted")
	return nil
}

func (s *service) OverridePlan(ctx context.Context, code string, rawPlan string) (plan.Plan, error) {
	code = codes.NormalizeCode(code)
	if code == "" || strings.TrimSpace(rawPlan) == "" {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Missing slug or plan", nil, "5942a02a-40ee-4f5f-8aac-b705db36b92a")
	}
	target, ok := plan.Parse(rawPlan)
	if !ok {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Invalid plan", nil, "ac2f658b-039a-4867-b0d7-d9016d3e91ca")
	}

	if err := s.repo.SetPlan(ctx, code, target); err != nil {
		return "", platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Database update failed")
	}
	s.log.Info().Str("code", code).Str("plan", string(target)).Msg("plan overridden")
	return target, nil
}

func (s *service) Authorize(ctx context.Context, code string, editSecret string) (*Page, error) {
	p, err := s.Lookup(ctx, code)
	if err != nil {
		if platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "Unauthorized", nil, "c219fc40-6dc4-4f07-81a9-2a50286cca93")
		}
		return nil, err
	}
	if editSecret == "" || subtle.ConstantTimeCompare([]byte(p.EditSecret), []byte(editSecret)) != 1 {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeUnauthorized, "Unauthorized", nil, "31b77755-55b4-41ee-b8ab-a2cc4f679408")
	}
	return p, nil
}

func (s *service) Lookup(ctx context.Context, code string) (*Page, error) {
	code = codes.NormalizeCode(code)
	if code == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Invalid code", nil, "45e8311c-5693-4431-a147-a8bca1662142")
	}
	p, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "Not found")
	}
	return p, nil
}
