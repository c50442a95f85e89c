package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"love-unlock/internal/domain"
	"love-unlock/internal/domain/plan"
	"love-unlock/internal/utils/platformerrors"
)

type Service interface {
	List(ctx context.Context, code string) ([]*Memory, error)
	Add(ctx context.Context, code string, editSecret string, in AddInput) (*Memory, error)
}

type service struct {
	pages domain.PageResolver
	repo  Repository
	tx    Transactor
	log   zerolog.Logger
}

func NewService(pages domain.PageResolver, repo Repository, tx Transactor, log zerolog.Logger) Service {
	return &service{
		pages: pages,
		repo:  repo,
		tx:    tx,
		log:   log.With().Str("component", "memory-service").Logger(),
	}
}

func (s *service) List(ctx context.Context, code string) ([]*Memory, error) {
	p, err := s.pages.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByPage(ctx, p.ID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "list memories")
	}
	return items, nil
}

func (s *service) Add(ctx context.Context, code string, editSecret string, in AddInput) (*Memory, error) {
	p, err := s.pages.Authorize(ctx, code, editSecret)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" || len(title) > MaxTitleLength {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "Title is required", nil, "e6f2c0a4-5b1d-4f7e-9a83-2d4c6b8e1f30")
	}
	date, err := time.Parse(DateLayout, strings.TrimSpace(in.MemoryDate))
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "memory_date must be YYYY-MM-DD", err, "0b7d3e5f-1a2c-4e6b-8d9f-3c5a7e9b1d24")
	}

	m := &Memory{
		PageID:     p.ID,
		MemoryDate: date,
		Title:      title,
		Note:       trimmedOrNil(in.Note),
		PhotoURL:   trimmedOrNil(in.PhotoURL),
	}

	var (
		count int64
		limit int
	)
	// the page row lock serializes concurrent adds, so the count cannot go stale before the insert
	add := func(ctx context.Context) error {
		current, err := s.repo.LockPage(ctx, p.ID)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "lock page")
		}
		tier := plan.Normalize(string(current))
		limit = plan.LimitsFor(tier).Memories
		count, err = s.repo.CountByPage(ctx, p.ID)
		if err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "count memories")
		}
		if count >= int64(limit) {
			return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden, fmt.Sprintf("Memory limit reached for %s", tier), nil, "9c1e4a7b-3d5f-4b8a-a2c6-5e7f9b1d3a46")
		}
		if err := s.repo.Create(ctx, m); err != nil {
			return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "create memory")
		}
		return nil
	}

	if s.tx == nil {
		err = add(ctx)
	} else {
		err = s.tx.Transaction(ctx, add)
	}
	if err != nil {
		return nil, err
	}

	s.log.Debug().Str("code", p.Code).Int64("count", count+1).Int("limit", limit).Msg("memory added")
	return m, nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
