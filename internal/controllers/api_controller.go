package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"ogef/internal/dto"
	"ogef/internal/services"
	"ogef/pkg/api"
	apperrors "ogef/pkg/errors"
	"ogef/pkg/utils"
)

// ApiController: JSON-эндпоинты только для чтения, их дергает JS форм.
// Ошибки пишутся в логгер запроса внутри api.ErrorResponse.
type ApiController struct {
	readModel services.ReadModelServiceInterface
	timeout   time.Duration
}

func NewApiController(readModel services.ReadModelServiceInterface, timeout time.Duration) *ApiController {
	return &ApiController{readModel: readModel, timeout: timeout}
}

// Коды и номера в БД хранятся как INTEGER: за его пределами строк быть не может.
func fitsInteger(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
}

func (ctrl *ApiController) ListDistricts(c echo.Context) error {
	code, err := strconv.ParseInt(c.Param("code"), 10, 64)
	if err != nil {
		return api.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Code de wilaya invalide", nil, nil))
	}
	if !fitsInteger(code) {
		return api.JSON(c, http.StatusOK, []dto.DistrictOptionDTO{})
	}

	reqCtx, cancel := utils.ContextWithTimeout(c, ctrl.timeout)
	defer cancel()

	items, err := ctrl.readModel.ListDistrictsByRegion(reqCtx, code)
	if err != nil {
		return api.ErrorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, "Erreur de requête", err, nil))
	}
	return api.JSON(c, http.StatusOK, items)
}

func (ctrl *ApiController) ListOffices(c echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(c, ctrl.timeout)
	defer cancel()

	res, err := ctrl.readModel.ListOfficesSummary(reqCtx)
	if err != nil {
		return api.ErrorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, "Erreur de requête", err, nil))
	}
	return api.JSON(c, http.StatusOK, res)
}

// GetOffice отвечает 200 и пустыми списками на несуществующий номер.
func (ctrl *ApiController) GetOffice(c echo.Context) error {
	number, err := strconv.ParseInt(c.Param("numero"), 10, 64)
	if err != nil {
		return api.ErrorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Numéro de GEF invalide", nil, nil))
	}
	if !fitsInteger(number) {
		return api.JSON(c, http.StatusOK, dto.NewEmptyDetailResponse())
	}

	reqCtx, cancel := utils.ContextWithTimeout(c, ctrl.timeout)
	defer cancel()

	res, err := ctrl.readModel.GetOfficeDetail(reqCtx, number)
	if err != nil {
		return api.ErrorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, "Erreur de requête", err, nil))
	}
	return api.JSON(c, http.StatusOK, res)
}
