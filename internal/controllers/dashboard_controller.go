package controllers

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ogef/internal/services"
	"ogef/internal/views"
	"ogef/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	flasher          *utils.Flasher
	timeout          time.Duration
	logger           *zap.Logger
}

func NewDashboardController(ds services.DashboardServiceInterface, flasher *utils.Flasher, timeout time.Duration, logger *zap.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: ds,
		flasher:          flasher,
		timeout:          timeout,
		logger:           logger,
	}
}

// Index рисует главную страницу. Ошибка подсчёта даёт N/A и предупреждение.
func (ctrl *DashboardController) Index(c echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(c, ctrl.timeout)
	defer cancel()

	counts, err := ctrl.dashboardService.GetCounts(reqCtx)
	if err != nil {
		ctrl.logger.Warn("Method: Index, статистика недоступна", zap.Error(err))
		ctrl.flasher.Now(c, utils.FlashWarning, "Statistiques indisponibles : "+err.Error())
	}
	return renderPage(c, ctrl.flasher, views.PageDashboard, "Tableau de bord", counts)
}
