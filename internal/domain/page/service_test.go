package page

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"love-unlock/internal/domain/plan"
	"love-unlock/internal/utils/platformerrors"
)

type fakeRepo struct {
	mu    sync.Mutex
	pages map[string]*Page
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{pages: make(map[string]*Page)}
}

func (r *fakeRepo) Create(_ context.Context, p *Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pages[p.Code]; ok {
		return gorm.ErrDuplicatedKey
	}
	p.ID = "id-" + p.Code
	p.CreatedAt = time.Now()
	cp := *p
	r.pages[p.Code] = &cp
	return nil
}

func (r *fakeRepo) FindByCode(ctx context.Context, code string) (*Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[code]
	if !ok {
		return nil, platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, gorm.ErrRecordNotFound, "Not found", "test")
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) CodeExists(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pages[code]
	return ok, nil
}

func (r *fakeRepo) ListByOwner(_ context.Context, ownerID string) ([]*Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Page
	for _, p := range r.pages {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateSettings(_ context.Context, code string, u SettingsUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.pages[code]
	if u.StealthEnabled != nil {
		p.StealthEnabled = *u.StealthEnabled
	}
	if u.RevealAt != nil {
		p.RevealAt = u.RevealAt
	}
	if u.ClearRevealAt {
		p.RevealAt = nil
	}
	return nil
}

func (r *fakeRepo) RecordResponse(ctx context.Context, code string, choice string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pages[code]
	if !ok {
		return platformerrors.AsErrorWithUUID(ctx, platformerrors.LayerRepository, gorm.ErrRecordNotFound, "Not found", "test")
	}
	p.PartnerChoice = &choice
	p.PartnerRespondedAt = &at
	return nil
}

func (r *fakeRepo) BumpViews(_ context.Context, code string, at time.Time) (ViewStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.pages[code]
	p.Views++
	if p.FirstOpenedAt == nil {
		p.FirstOpenedAt = &at
	}
	p.LastOpenedAt = &at
	return ViewStats{Views: p.Views, FirstOpenedAt: p.FirstOpenedAt, LastOpenedAt: p.LastOpenedAt}, nil
}

func (r *fakeRepo) SetPlan(_ context.Context, code string, pl plan.Plan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[code].Plan = pl
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for code, p := range r.pages {
		if p.ID == id {
			delete(r.pages, code)
		}
	}
	return nil
}

type fakeCapability struct{}

func (fakeCapability) Issue(code string) (Capability, error) {
	return Capability{Token: "grant:" + code, ExpiresAt: time.Now().Add(time.Minute)}, nil
}

func (fakeCapability) Verify(token string, code string) error {
	if token != "grant:"+code {
		return errors.New("invalid capability")
	}
	return nil
}

func newTestService() (*service, *fakeRepo) {
	repo := newFakeRepo()
	svc := NewService(repo, fakeCapability{}, zerolog.Nop()).(*service)
	return svc, repo
}

func createPage(t *testing.T, svc *service) Created {
	t.Helper()
	created, err := svc.Create(context.Background(), "owner-1", CreateInput{
		DisplayName: " Mim ",
		Message:     "Will you be my valentine?",
		PIN:         "4321",
	})
	require.NoError(t, err)
	return created
}

func TestCreateValidatesInput(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "owner-1", CreateInput{DisplayName: "A", Message: "", PIN: "1234"})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = svc.Create(ctx, "owner-1", CreateInput{DisplayName: "A", Message: "B", PIN: "123"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PIN must be at least 4 digits")

	_, err = svc.Create(ctx, "", CreateInput{DisplayName: "A", Message: "B", PIN: "1234"})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))
}

func TestCreateDefaults(t *testing.T) {
	svc, repo := newTestService()
	created := createPage(t, svc)

	assert.Len(t, created.Code, 7)
	assert.Len(t, created.EditSecret, 32)

	stored := repo.pages[created.Code]
	require.NotNil(t, stored)
	assert.Equal(t, "Mim", stored.DisplayName)
	assert.Equal(t, plan.Free, stored.Plan)
	assert.True(t, stored.StealthEnabled)
	assert.True(t, stored.Watermark)
	assert.Nil(t, stored.Subtitle)
	assert.NotEqual(t, "4321", stored.PinHash)
}

func TestStealthPageRequiresCapability(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created := createPage(t, svc)

	locked, err := svc.GetPublic(ctx, created.Code, "")
	require.NoError(t, err)
	assert.True(t, locked.Locked)
	assert.Nil(t, locked.Message)

	forged, err := svc.GetPublic(ctx, created.Code, "grant:OTHER")
	require.NoError(t, err)
	assert.Nil(t, forged.Message)

	_, err = svc.VerifyPIN(ctx, created.Code, "0000")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))

	grant, err := svc.VerifyPIN(ctx, created.Code, "4321")
	require.NoError(t, err)

	open, err := svc.GetPublic(ctx, created.Code, grant.Token)
	require.NoError(t, err)
	assert.False(t, open.Locked)
	require.NotNil(t, open.Message)
	assert.Equal(t, "Will you be my valentine?", *open.Message)
}

func TestVerifyPINUnknownCode(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.VerifyPIN(context.Background(), "NOPE123", "1234")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestRevealTimeSealsMessage(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	created := createPage(t, svc)

	now := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	reveal := now.Add(time.Hour)
	disable := false
	require.NoError(t, svc.UpdateSettings(ctx, created.Code, created.EditSecret, SettingsUpdate{
		StealthEnabled: &disable,
		RevealAt:       &reveal,
	}))

	sealed, err := svc.GetPublic(ctx, created.Code, "")
	require.NoError(t, err)
	assert.Nil(t, sealed.Message)
	require.NotNil(t, sealed.SealedUntil)
	assert.True(t, sealed.SealedUntil.Equal(reveal))

	svc.now = func() time.Time { return reveal.Add(time.Second) }
	opened, err := svc.GetPublic(ctx, created.Code, "")
	require.NoError(t, err)
	assert.NotNil(t, opened.Message)
	assert.Nil(t, opened.SealedUntil)
}

func TestUpdateSettingsRequiresEditSecret(t *testing.T) {
	svc, _ := newTestService()
	created := createPage(t, svc)
	off := false

	err := svc.UpdateSettings(context.Background(), created.Code, "wrong", SettingsUpdate{StealthEnabled: &off})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))

	err = svc.UpdateSettings(context.Background(), "MISSING", created.EditSecret, SettingsUpdate{StealthEnabled: &off})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))
}

func TestRespond(t *testing.T) {
	svc, repo := newTestService()
	created := createPage(t, svc)

	err := svc.Respond(context.Background(), created.Code, "maybe")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	require.NoError(t, svc.Respond(context.Background(), created.Code, "yes"))
	require.NotNil(t, repo.pages[created.Code].PartnerChoice)
	assert.Equal(t, ChoiceYes, *repo.pages[created.Code].PartnerChoice)

	err = svc.Respond(context.Background(), "UNKNOWN", "NO")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestDeleteChecksOwner(t *testing.T) {
	svc, repo := newTestService()
	created := createPage(t, svc)

	err := svc.Delete(context.Background(), created.Code, "owner-2")
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))

	require.NoError(t, svc.Delete(context.Background(), created.Code, "owner-1"))
	assert.Empty(t, repo.pages)
}

func TestOverridePlan(t *testing.T) {
	svc, repo := newTestService()
	created := createPage(t, svc)

	_, err := svc.OverridePlan(context.Background(), created.Code, "GOLD")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = svc.OverridePlan(context.Background(), "", "ROM99")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	got, err := svc.OverridePlan(context.Background(), created.Code, "crush49")
	require.NoError(t, err)
	assert.Equal(t, plan.Crush, got)
	assert.Equal(t, plan.Crush, repo.pages[created.Code].Plan)
}

func TestRecordView(t *testing.T) {
	svc, _ := newTestService()
	created := createPage(t, svc)

	first, err := svc.RecordView(context.Background(), created.Code)
	require.NoError(t, err)
	second, err := svc.RecordView(context.Background(), created.Code)
	require.NoError(t, err)

	assert.Equal(t, int64(2), second.Views)
	assert.Equal(t, first.FirstOpenedAt, second.FirstOpenedAt)
}
