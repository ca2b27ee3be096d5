package services

import (
	"context"

	"go.uber.org/zap"

	"ogef/internal/dto"
	"ogef/internal/repositories"
)

const warnFilterResults = "La recherche a échoué, aucun résultat à afficher."

type OfficeFilterServiceInterface interface {
	Page(ctx context.Context, filter dto.OfficeFilter) *dto.OfficeFilterPage
	List(ctx context.Context, filter dto.OfficeFilter) ([]dto.OfficeListItemDTO, error)
}

type OfficeFilterService struct {
	repo      repositories.OfficeFilterRepositoryInterface
	reference ReferenceServiceInterface
	logger    *zap.Logger
}

func NewOfficeFilterService(repo repositories.OfficeFilterRepositoryInterface, reference ReferenceServiceInterface, logger *zap.Logger) OfficeFilterServiceInterface {
	return &OfficeFilterService{repo: repo, reference: reference, logger: logger}
}

func (s *OfficeFilterService) List(ctx context.Context, filter dto.OfficeFilter) ([]dto.OfficeListItemDTO, error) {
	items, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка фильтрации GEF", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// Page никогда не падает: ошибки дают пустые списки и предупреждения.
func (s *OfficeFilterService) Page(ctx context.Context, filter dto.OfficeFilter) *dto.OfficeFilterPage {
	page := &dto.OfficeFilterPage{Filter: filter}

	page.Reference, page.Warnings = s.reference.Lists(ctx, filter.RegionCode)

	results, err := s.List(ctx, filter)
	if err != nil {
		page.Warnings = append(page.Warnings, warnFilterResults)
		return page
	}
	page.Results = results
	return page
}
