package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"ogef/internal/dto"
	"ogef/internal/services"
	"ogef/internal/views"
	apperrors "ogef/pkg/errors"
	"ogef/pkg/types"
	"ogef/pkg/utils"
)

type OfficeController struct {
	officeService    services.OfficeServiceInterface
	filterService    services.OfficeFilterServiceInterface
	referenceService services.ReferenceServiceInterface
	flasher          *utils.Flasher
	timeout          time.Duration
	logger           *zap.Logger
}

func NewOfficeController(
	officeService services.OfficeServiceInterface,
	filterService services.OfficeFilterServiceInterface,
	referenceService services.ReferenceServiceInterface,
	flasher *utils.Flasher,
	timeout time.Duration,
	logger *zap.Logger,
) *OfficeController {
	return &OfficeController{
		officeService:    officeService,
		filterService:    filterService,
		referenceService: referenceService,
		flasher:          flasher,
		timeout:          timeout,
		logger:           logger,
	}
}

func (ctrl *OfficeController) ShowAddForm(c echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(c, ctrl.timeout)
	defer cancel()

	lists, warnings := ctrl.referenceService.Lists(reqCtx, nil)
	for _, w := range warnings {
		ctrl.flasher.Now(c, utils.FlashWarning, w)
	}
	return renderPage(c, ctrl.flasher, views.PageAddOffice, "Ajouter un GEF", views.OfficeFormData{
		Action:    "/gef/add",
		Reference: lists,
	})
}

func (ctrl *OfficeController) CreateOffice(c echo.Context) error {
	in, err := ctrl.readForm(c)
	if err != nil {
		ctrl.logger.Warn("Method: CreateOffice, некорректная форма", zap.Error(err))
		return redirectWithFlash(c, ctrl.flasher, "/gef/add", utils.FlashDanger, "Données invalides : "+formErrorMessage(err))
	}
	defer closePhoto(in.Photo)

	reqCtx, cancel := utils.ContextWithTimeout(c, ctrl.timeout)
	defer cancel()

	outcome := ctrl.officeService.Create(reqCtx, in)
	switch outcome.Kind {
	case types.OutcomeCreated:
		return redirectWithFlash(c, ctrl.flasher, "/", utils.FlashSuccess,
			fmt.Sprintf("GEF %d ajouté avec succès.", outcome.OfficeNumber))
	case types.OutcomeDuplicate:
		return redirectWithFlash(c, ctrl.flasher, "/gef/add", utils.FlashDanger,
			fmt.Sprintf("Le GEF numéro %d existe déjà.", outcome.OfficeNumber))
	case types.OutcomeInvalid:
		return redirectWithFlash(c, ctrl.flasher, "/gef/add", utils.FlashDanger,
			"Données invalides : "+formErrorMessage(outcome.Err))
	default:
		return redirectWithFlash(c, ctrl.flasher, "/gef/add", utils.FlashDanger,
			"Erreur lors de l'ajout : "+outcomeError(outcome))
	}
}

func (ctrl *OfficeController) ShowEditForm(c echo.Context) error {
	number, err := parseOfficeNumber(c.Param("numero"))
	if err != nil {
		return redirectWithFlash(c, ctrl.flasher, "/", utils.FlashDanger, "Numéro de GEF invalide.")
	}

	reqCtx, cancel := utils.ContextWithTimeout(c, ctrl.timeout)
	defer cancel()

	edit, err := ctrl.officeService.GetForEdit(reqCtx, number)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return redirectWithFlash(c, ctrl.flasher, "/", utils.FlashWarning, fmt.Sprintf("GEF %d introuvable.", number))
		}
		ctrl.logger.Error("Method: ShowEditForm", zap.Int64("numero", number), zap.Error(err))
		return redirectWithFlash(c, ctrl.flasher, "/", utils.FlashDanger, "Erreur de lecture du GEF : "+err.Error())
	}

	var regionCode *int64
	if edit.RegionCode.Valid {
		regionCode = &edit.RegionCode.Int64
	}
	lists, warnings := ctrl.referenceService.Lists(reqCtx, regionCode)
	for _, w := range warnings {
		ctrl.flasher.Now(c, utils.FlashWarning, w)
	}

	data := views.OfficeFormData{
		Action:    fmt.Sprintf("/gef/update/%d", number),
		Edit:      edit,
		Reference: lists,
	}
	if edit.Office.BirthRegionCode.Valid {
		data.BirthDistricts, err = ctrl.referenceService.DistrictsByRegion(reqCtx, edit.Office.BirthRegionCode.Int64)
		if err != nil {
			ctrl.logger.Warn("Method: ShowEditForm, коммуны рождения недоступны", zap.Error(err))
		}
	}

	return renderPage(c, ctrl.flasher, views.PageEdit, fmt.Sprintf("Modifier le GEF %d", number), data)
}

func (ctrl *OfficeController) UpdateOffice(c echo.Context) error {
	number, err := parseOfficeNumber(c.Param("numero"))
	if err != nil {
		return redirectWithFlash(c, ctrl.flasher, "/", utils.FlashDanger, "Numéro de GEF invalide.")
	}
	editURL := fmt.Sprintf("/gef/edit/%d", number)

	in, err := ctrl.readForm(c)
	if err != nil {
		ctrl.logger.Warn("Method: UpdateOffice, некорректная форма", zap.Error(err))
		return redirectWithFlash(c, ctrl.flasher, editURL, utils.FlashDanger, "Données invalides : "+formErrorMessage(err))
	}
	defer closePhoto(in.Photo)

	reqCtx, cancel := utils.ContextWithTimeout(c, ctrl.timeout)
	defer cancel()

	outcome := ctrl.officeService.Update(reqCtx, number, in)
	switch outcome.Kind {
	case types.OutcomeUpdated:
		return redirectWithFlash(c, ctrl.flasher, "/", utils.FlashSuccess, fmt.Sprintf("GEF %d mis à jour.", number))
	case types.OutcomeNotFound:
		return redirectWithFlash(c, ctrl.flasher, "/", utils.FlashWarning, fmt.Sprintf("GEF %d introuvable.", number))
	case types.OutcomeInvalid:
		return redirectWithFlash(c, ctrl.flasher, editURL, utils.FlashDanger, "Données invalides : "+formErrorMessage(outcome.Err))
	default:
		return redirectWithFlash(c, ctrl.flasher, editURL, utils.FlashDanger, "Erreur lors de la mise à jour : "+outcomeError(outcome))
	}
}

func (ctrl *OfficeController) DeleteOffice(c echo.Context) error {
	number, err := parseOfficeNumber(c.Param("numero"))
	if err != nil {
		return redirectWithFlash(c, ctrl.flasher, "/", utils.FlashDanger, "Numéro de GEF invalide.")
	}

	reqCtx, cancel := utils.ContextWithTimeout(c, ctrl.timeout)
	defer cancel()

	outcome := ctrl.officeService.Delete(reqCtx, number)
	switch outcome.Kind {
	case types.OutcomeDeleted:
		return redirectWithFlash(c, ctrl.flasher, "/", utils.FlashSuccess, fmt.Sprintf("GEF %d supprimé.", number))
	case types.OutcomeNotFound:
		return redirectWithFlash(c, ctrl.flasher, "/", utils.FlashWarning,
			fmt.Sprintf("GEF %d introuvable, rien n'a été supprimé.", number))
	default:
		return redirectWithFlash(c, ctrl.flasher, "/", utils.FlashDanger, "Erreur lors de la suppression : "+outcomeError(outcome))
	}
}

func (ctrl *OfficeController) FilterOffices(c echo.Context) error {
	var q dto.OfficeFilterQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		ctrl.logger.Warn("Method: FilterOffices, параметры не разобраны", zap.Error(err))
	}

	reqCtx, cancel := utils.ContextWithTimeout(c, ctrl.timeout)
	defer cancel()

	page := ctrl.filterService.Page(reqCtx, q.ToFilter())
	for _, w := range page.Warnings {
		ctrl.flasher.Now(c, utils.FlashWarning, w)
	}
	return renderPage(c, ctrl.flasher, views.PageFilter, "Rechercher des GEF", page)
}

var exportHeaders = []interface{}{
	"Numéro", "Nom", "Wilaya", "Commune", "Statut", "Situation", "Équipements", "Agréments",
}

func exportRow(item dto.OfficeListItemDTO) []interface{} {
	equipments := make([]string, 0, len(item.Equipments))
	for _, e := range item.Equipments {
		equipments = append(equipments, fmt.Sprintf("%s (%d)", e.Name, e.Quantity))
	}
	approvals := make([]string, 0, len(item.Approvals))
	for _, a := range item.Approvals {
		approvals = append(approvals, a.Name)
	}
	return []interface{}{
		item.Number, item.LegalName, item.RegionName, item.DistrictName, item.Status, item.Situation,
		strings.Join(equipments, ", "), strings.Join(approvals, ", "),
	}
}

// ExportOffices выгружает тот же фильтр, что и на странице, но в XLSX.
func (ctrl *OfficeController) ExportOffices(c echo.Context) error {
	var q dto.OfficeFilterQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		ctrl.logger.Warn("Method: ExportOffices, параметры не разобраны", zap.Error(err))
	}

	reqCtx, cancel := utils.ContextWithTimeout(c, ctrl.timeout)
	defer cancel()

	items, err := ctrl.filterService.List(reqCtx, q.ToFilter())
	if err != nil {
		back := "/gef/filter"
		if raw := c.QueryString(); raw != "" {
			back += "?" + raw
		}
		return redirectWithFlash(c, ctrl.flasher, back, utils.FlashDanger, "Export impossible : "+err.Error())
	}
	return ctrl.respondWithXLSX(c, items)
}

func (ctrl *OfficeController) respondWithXLSX(c echo.Context, items []dto.OfficeListItemDTO) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "GEF"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &exportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "H1", style)

	for i, item := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := exportRow(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "D", 20)
	f.SetColWidth(sheet, "G", "H", 40)

	fileName := fmt.Sprintf("gef_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+fileName)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response().Writer)
}

// readForm: привязка формы, перевод в типизированный ввод, валидация и файл фото.
func (ctrl *OfficeController) readForm(c echo.Context) (dto.OfficeInput, error) {
	var form dto.OfficeForm
	if err := c.Bind(&form); err != nil {
		return dto.OfficeInput{}, err
	}

	if params, err := c.FormParams(); err == nil {
		form.ApprovalDates = make(map[string]string)
		for key, values := range params {
			if id, ok := strings.CutPrefix(key, dto.ApprovalDateFieldPrefix); ok && len(values) > 0 {
				form.ApprovalDates[id] = values[0]
			}
		}
	}

	// При обновлении номер берётся из пути.
	if number := c.Param("numero"); number != "" {
		form.Numero = number
	}

	in, err := form.ToInput()
	if err != nil {
		return in, err
	}
	if err := c.Validate(&in); err != nil {
		return in, err
	}

	fh, err := c.FormFile("photo")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		ctrl.logger.Warn("Method: readForm, файл фото не прочитан", zap.Error(err))
	case fh.Size > 0:
		src, err := fh.Open()
		if err != nil {
			return in, fmt.Errorf("photo illisible : %w", err)
		}
		in.Photo = &dto.PhotoUpload{File: src, Filename: fh.Filename}
	}
	return in, nil
}

func closePhoto(p *dto.PhotoUpload) {
	if p == nil {
		return
	}
	if closer, ok := p.File.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

func formErrorMessage(err error) string {
	var invalid *apperrors.InvalidInputError
	if errors.As(err, &invalid) {
		return invalid.Message
	}
	return validationMessage(err)
}

func outcomeError(o types.WriteOutcome) string {
	if o.Err == nil {
		return o.Kind.String()
	}
	return o.Err.Error()
}
