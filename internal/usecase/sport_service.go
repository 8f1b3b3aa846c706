package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/sport-search/internal/domain/sport"
)

type SportService struct {
	sportRepo sport.Repository
}

func NewSportService(sportRepo sport.Repository) *SportService {
	return &SportService{sportRepo: sportRepo}
}

func (s *SportService) ListSports(ctx context.Context) ([]sport.Sport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SportService.ListSports")
	defer span.End()

	sports, err := s.sportRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sports: %w", err)
	}

	return sports, nil
}

func (s *SportService) GetSport(ctx context.Context, sportID string) (sport.Sport, error) {
	sportID = strings.TrimSpace(sportID)
	if sportID == "" {
		return sport.Sport{}, fmt.Errorf("%w: sport id is required", ErrInvalidInput)
	}

	item, exists, err := s.sportRepo.GetByID(ctx, sportID)
	if err != nil {
		return sport.Sport{}, fmt.Errorf("get sport: %w", err)
	}
	if !exists {
		return sport.Sport{}, fmt.Errorf("%w: sport=%s", ErrNotFound, sportID)
	}

	return item, nil
}
