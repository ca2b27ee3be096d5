package services

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"ogef/internal/dto"
	"ogef/internal/entities"
	"ogef/internal/repositories"
)

const (
	warnRegions        = "Impossible de charger la liste des wilayas."
	warnDistricts      = "Impossible de charger la liste des communes."
	warnEquipmentTypes = "Impossible de charger les types d'équipement."
	warnApprovalTypes  = "Impossible de charger la liste des agréments."
)

type ReferenceServiceInterface interface {
	Regions(ctx context.Context) ([]entities.Region, error)
	DistrictsByRegion(ctx context.Context, regionCode int64) ([]entities.District, error)
	EquipmentTypes(ctx context.Context) ([]entities.EquipmentType, error)
	ApprovalTypes(ctx context.Context) ([]entities.ApprovalType, error)
	// Lists загружает все справочники; ошибки превращаются в пустые списки и предупреждения.
	Lists(ctx context.Context, regionCode *int64) (dto.ReferenceLists, []string)
}

type ReferenceService struct {
	repo   repositories.ReferenceRepositoryInterface
	base   *BaseService
	logger *zap.Logger
}

func NewReferenceService(repo repositories.ReferenceRepositoryInterface, base *BaseService, logger *zap.Logger) ReferenceServiceInterface {
	return &ReferenceService{repo: repo, base: base, logger: logger}
}

func (s *ReferenceService) Regions(ctx context.Context) ([]entities.Region, error) {
	return cached(ctx, s.base, repositories.CacheKeyRegions, s.repo.ListRegions)
}

func (s *ReferenceService) DistrictsByRegion(ctx context.Context, regionCode int64) ([]entities.District, error) {
	key := repositories.CacheKeyPrefix + "communes:" + strconv.FormatInt(regionCode, 10)
	return cached(ctx, s.base, key, func(ctx context.Context) ([]entities.District, error) {
		return s.repo.ListDistrictsByRegion(ctx, regionCode)
	})
}

func (s *ReferenceService) EquipmentTypes(ctx context.Context) ([]entities.EquipmentType, error) {
	return cached(ctx, s.base, repositories.CacheKeyEquipmentTypes, s.repo.ListEquipmentTypes)
}

func (s *ReferenceService) ApprovalTypes(ctx context.Context) ([]entities.ApprovalType, error) {
	return cached(ctx, s.base, repositories.CacheKeyApprovalTypes, s.repo.ListApprovalTypes)
}

func (s *ReferenceService) Lists(ctx context.Context, regionCode *int64) (dto.ReferenceLists, []string) {
	var lists dto.ReferenceLists
	var warnings []string
	var err error

	if lists.Regions, err = s.Regions(ctx); err != nil {
		s.logger.Warn("Не удалось загрузить вилайи", zap.Error(err))
		warnings = append(warnings, warnRegions)
	}
	if lists.EquipmentTypes, err = s.EquipmentTypes(ctx); err != nil {
		s.logger.Warn("Не удалось загрузить типы оборудования", zap.Error(err))
		warnings = append(warnings, warnEquipmentTypes)
	}
	if lists.ApprovalTypes, err = s.ApprovalTypes(ctx); err != nil {
		s.logger.Warn("Не удалось загрузить агременты", zap.Error(err))
		warnings = append(warnings, warnApprovalTypes)
	}
	if regionCode != nil {
		if lists.Districts, err = s.DistrictsByRegion(ctx, *regionCode); err != nil {
			s.logger.Warn("Не удалось загрузить коммуны", zap.Int64("wilaya", *regionCode), zap.Error(err))
			warnings = append(warnings, warnDistricts)
		}
	}

	return lists, warnings
}
