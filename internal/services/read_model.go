package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"ogef/internal/dto"
	"ogef/internal/repositories"
	apperrors "ogef/pkg/errors"
)

const uploadsURLPrefix = "/uploads/"

type ReadModelServiceInterface interface {
	ListDistrictsByRegion(ctx context.Context, regionCode int64) ([]dto.DistrictOptionDTO, error)
	ListOfficesSummary(ctx context.Context) (*dto.OfficeSummaryListDTO, error)
	GetOfficeDetail(ctx context.Context, number int64) (*dto.OfficeDetailResponse, error)
}

type ReadModelService struct {
	repo   repositories.ReadModelRepositoryInterface
	base   *BaseService
	logger *zap.Logger
}

func NewReadModelService(repo repositories.ReadModelRepositoryInterface, base *BaseService, logger *zap.Logger) ReadModelServiceInterface {
	return &ReadModelService{repo: repo, base: base, logger: logger}
}

func (s *ReadModelService) ListDistrictsByRegion(ctx context.Context, regionCode int64) ([]dto.DistrictOptionDTO, error) {
	items, err := s.repo.ListDistrictOptions(ctx, regionCode)
	if err != nil {
		s.logger.Error("Ошибка чтения коммун", zap.Int64("wilaya", regionCode), zap.Error(err))
		return nil, asQueryError(err)
	}
	if items == nil {
		items = []dto.DistrictOptionDTO{}
	}
	return items, nil
}

func (s *ReadModelService) ListOfficesSummary(ctx context.Context) (*dto.OfficeSummaryListDTO, error) {
	items, err := cached(ctx, s.base, repositories.CacheKeyOfficeSummary, s.repo.ListOfficesSummary)
	if err != nil {
		s.logger.Error("Ошибка чтения списка GEF", zap.Error(err))
		return nil, asQueryError(err)
	}
	if items == nil {
		items = []dto.OfficeSummaryDTO{}
	}
	return &dto.OfficeSummaryListDTO{Gefs: items}, nil
}

// GetOfficeDetail: для отсутствующего GEF ответ без ключа gef, не ошибка.
func (s *ReadModelService) GetOfficeDetail(ctx context.Context, number int64) (*dto.OfficeDetailResponse, error) {
	detail, err := s.repo.GetOfficeDetail(ctx, number)
	if err != nil {
		s.logger.Error("Ошибка чтения карточки GEF", zap.Int64("numero", number), zap.Error(err))
		return nil, asQueryError(err)
	}
	if detail.Gef == nil {
		s.logger.Debug("GEF не найден", zap.Int64("numero", number))
	} else if detail.Gef.PhotoURL != "" {
		detail.Gef.PhotoURL = uploadsURLPrefix + detail.Gef.PhotoURL
	}
	return detail, nil
}

func asQueryError(err error) error {
	if errors.Is(err, apperrors.ErrQuery) {
		return err
	}
	return fmt.Errorf("%w: %v", apperrors.ErrQuery, err)
}
