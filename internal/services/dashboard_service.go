package services

import (
	"context"

	"go.uber.org/zap"

	"ogef/internal/repositories"
	"ogef/pkg/types"
)

type DashboardServiceInterface interface {
	GetCounts(ctx context.Context) (types.DashboardCounts, error)
}

type DashboardService struct {
	repo   repositories.DashboardRepositoryInterface
	logger *zap.Logger
}

func NewDashboardService(repo repositories.DashboardRepositoryInterface, logger *zap.Logger) DashboardServiceInterface {
	return &DashboardService{repo: repo, logger: logger}
}

// GetCounts при ошибке возвращает счётчики с Valid=false, их можно сразу показывать как N/A.
func (s *DashboardService) GetCounts(ctx context.Context) (types.DashboardCounts, error) {
	counts, err := s.repo.GetCounts(ctx)
	if err != nil {
		s.logger.Error("Ошибка подсчёта статистики", zap.Error(err))
		return types.DashboardCounts{}, err
	}
	return *counts, nil
}
