package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"ogef/internal/dto"
	"ogef/internal/entities"
	"ogef/internal/views"
	apperrors "ogef/pkg/errors"
	"ogef/pkg/types"
	"ogef/pkg/utils"
)

type OfficeControllerSuite struct {
	suite.Suite
	Echo      *echo.Echo
	Renderer  *stubRenderer
	Offices   *fakeOfficeService
	Filter    *fakeFilterService
	Reference *fakeReferenceService
}

func (s *OfficeControllerSuite) SetupTest() {
	s.Echo, s.Renderer = newTestEcho()
	s.Offices = &fakeOfficeService{}
	s.Filter = &fakeFilterService{}
	s.Reference = &fakeReferenceService{}

	ctrl := NewOfficeController(s.Offices, s.Filter, s.Reference, utils.NewFlasher(testSecret), time.Second, zap.NewNop())
	s.Echo.GET("/gef/add", ctrl.ShowAddForm)
	s.Echo.POST("/gef/add", ctrl.CreateOffice)
	s.Echo.GET("/gef/edit/:numero", ctrl.ShowEditForm)
	s.Echo.POST("/gef/update/:numero", ctrl.UpdateOffice)
	s.Echo.POST("/gef/delete/:numero", ctrl.DeleteOffice)
	s.Echo.GET("/gef/filter", ctrl.FilterOffices)
	s.Echo.GET("/gef/filter/export", ctrl.ExportOffices)
}

func (s *OfficeControllerSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, req)
	return rec
}

func officeForm() url.Values {
	return url.Values{
		"numero":              {"1001"},
		"n_p":                 {"Bureau A"},
		"email":               {"bureau@example.dz"},
		"commune_c":           {"16001"},
		"date_obt":            {"2020-13-45"},
		"personnel_nom":       {"Benali", ""},
		"personnel_prenom":    {"Karim", ""},
		"personnel_profile":   {"Agent", ""},
		"telephone_type":      {"fixe"},
		"telephone_numero":    {"021 00 00 00"},
		"equipement_id":       {"1", "2"},
		"equipement_quantite": {"3", ""},
		"agrement_ids":        {"5"},
		"agrement_date_5":     {"2019-05-01"},
		"agrement_date_6":     {"2018-01-01"},
	}
}

func (s *OfficeControllerSuite) TestCreate_Success() {
	s.Offices.outcome = types.WriteOutcome{Kind: types.OutcomeCreated, OfficeNumber: 1001}

	rec := s.serve(postForm("/gef/add", officeForm()))

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/", rec.Header().Get(echo.HeaderLocation))
	s.Equal(1, s.Offices.calls)

	in := s.Offices.lastInput
	s.Equal(int64(1001), in.Number)
	s.Equal(null.Int64From(16001), in.DistrictCode)
	s.False(in.DateObtained.Valid)
	s.Equal([]string{"date_obt"}, in.DroppedDates)
	s.Len(in.Staff, 1)
	s.Len(in.Phones, 1)
	s.Equal([]dto.EquipmentInput{{TypeID: 1, Quantity: 3}, {TypeID: 2, Quantity: 1}}, in.Equipment)
	s.Require().Len(in.Approvals, 1)
	s.Equal(int64(5), in.Approvals[0].TypeID)
	s.Equal("2019-05-01", utils.FormatDate(in.Approvals[0].DateObtained))
	s.Nil(in.Photo)

	flashes := flashesFrom(s.Echo, rec)
	s.Require().Len(flashes, 1)
	s.Equal(utils.FlashSuccess, flashes[0].Category)
	s.Contains(flashes[0].Message, "1001")
}

func (s *OfficeControllerSuite) TestCreate_Duplicate() {
	s.Offices.outcome = types.WriteOutcome{Kind: types.OutcomeDuplicate, OfficeNumber: 1001, Err: apperrors.ErrDuplicateKey}

	rec := s.serve(postForm("/gef/add", officeForm()))

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/gef/add", rec.Header().Get(echo.HeaderLocation))
	flashes := flashesFrom(s.Echo, rec)
	s.Require().Len(flashes, 1)
	s.Equal(utils.FlashDanger, flashes[0].Category)
	s.Contains(flashes[0].Message, "existe déjà")
}

func (s *OfficeControllerSuite) TestCreate_PersistenceErrorCarriesCause() {
	cause := fmt.Errorf("%w: insert personnel: boom", apperrors.ErrPersistence)
	s.Offices.outcome = types.WriteOutcome{Kind: types.OutcomePersistenceError, OfficeNumber: 1001, Err: cause}

	rec := s.serve(postForm("/gef/add", officeForm()))

	s.Equal("/gef/add", rec.Header().Get(echo.HeaderLocation))
	flashes := flashesFrom(s.Echo, rec)
	s.Require().Len(flashes, 1)
	s.Contains(flashes[0].Message, "boom")
}

func (s *OfficeControllerSuite) TestCreate_InvalidNumberNeverReachesService() {
	form := officeForm()
	form.Set("numero", "abc")

	rec := s.serve(postForm("/gef/add", form))

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/gef/add", rec.Header().Get(echo.HeaderLocation))
	s.Zero(s.Offices.calls)
	flashes := flashesFrom(s.Echo, rec)
	s.Require().Len(flashes, 1)
	s.Contains(flashes[0].Message, "Numéro de GEF invalide")
}

func (s *OfficeControllerSuite) TestCreate_ValidationFailure() {
	form := officeForm()
	form.Set("n_p", "")
	form.Set("email", "pas-un-email")

	rec := s.serve(postForm("/gef/add", form))

	s.Equal("/gef/add", rec.Header().Get(echo.HeaderLocation))
	s.Zero(s.Offices.calls)
	flashes := flashesFrom(s.Echo, rec)
	s.Require().Len(flashes, 1)
	s.Contains(flashes[0].Message, "champs invalides")
	s.Contains(flashes[0].Message, "LegalName")
	s.Contains(flashes[0].Message, "gef_email")
}

func (s *OfficeControllerSuite) TestCreate_NumberBeyondIntegerColumnRejected() {
	form := officeForm()
	form.Set("numero", "3000000000")

	rec := s.serve(postForm("/gef/add", form))

	s.Equal("/gef/add", rec.Header().Get(echo.HeaderLocation))
	s.Zero(s.Offices.calls)
	flashes := flashesFrom(s.Echo, rec)
	s.Require().Len(flashes, 1)
	s.Equal(utils.FlashDanger, flashes[0].Category)
	s.Contains(flashes[0].Message, "Number (max)")
}

func (s *OfficeControllerSuite) TestWrite_PathNumberBeyondIntegerColumn() {
	for _, target := range []string{"/gef/update/3000000000", "/gef/delete/3000000000"} {
		rec := s.serve(postForm(target, officeForm()))

		s.Equal("/", rec.Header().Get(echo.HeaderLocation), target)
		flashes := flashesFrom(s.Echo, rec)
		s.Require().Len(flashes, 1, target)
		s.Equal("Numéro de GEF invalide.", flashes[0].Message, target)
	}
	s.Zero(s.Offices.calls)
}

func (s *OfficeControllerSuite) TestCreate_DuplicateEquipmentTypeRejected() {
	form := officeForm()
	form["equipement_id"] = []string{"1", "1"}
	form["equipement_quantite"] = []string{"1", "2"}

	rec := s.serve(postForm("/gef/add", form))

	s.Equal("/gef/add", rec.Header().Get(echo.HeaderLocation))
	s.Zero(s.Offices.calls)
}

func (s *OfficeControllerSuite) TestUpdate_UsesPathNumber() {
	s.Offices.outcome = types.WriteOutcome{Kind: types.OutcomeUpdated, OfficeNumber: 42}
	form := officeForm()
	form.Set("numero", "999")

	rec := s.serve(postForm("/gef/update/42", form))

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/", rec.Header().Get(echo.HeaderLocation))
	s.Equal(int64(42), s.Offices.lastNumber)
	s.Equal(int64(42), s.Offices.lastInput.Number)
}

func (s *OfficeControllerSuite) TestUpdate_NotFound() {
	s.Offices.outcome = types.WriteOutcome{Kind: types.OutcomeNotFound, OfficeNumber: 42, Err: apperrors.ErrNotFound}

	rec := s.serve(postForm("/gef/update/42", officeForm()))

	s.Equal("/", rec.Header().Get(echo.HeaderLocation))
	flashes := flashesFrom(s.Echo, rec)
	s.Require().Len(flashes, 1)
	s.Equal(utils.FlashWarning, flashes[0].Category)
}

func (s *OfficeControllerSuite) TestUpdate_PersistenceErrorBackToEdit() {
	s.Offices.outcome = types.WriteOutcome{Kind: types.OutcomePersistenceError, OfficeNumber: 42, Err: apperrors.ErrPersistence}

	rec := s.serve(postForm("/gef/update/42", officeForm()))

	s.Equal("/gef/edit/42", rec.Header().Get(echo.HeaderLocation))
	flashes := flashesFrom(s.Echo, rec)
	s.Require().Len(flashes, 1)
	s.Equal(utils.FlashDanger, flashes[0].Category)
}

func (s *OfficeControllerSuite) TestDelete_Outcomes() {
	s.Offices.outcome = types.WriteOutcome{Kind: types.OutcomeDeleted, OfficeNumber: 7}
	rec := s.serve(postForm("/gef/delete/7", url.Values{}))
	s.Equal("/", rec.Header().Get(echo.HeaderLocation))
	s.Equal(int64(7), s.Offices.lastNumber)
	s.Equal(utils.FlashSuccess, flashesFrom(s.Echo, rec)[0].Category)

	s.Offices.outcome = types.WriteOutcome{Kind: types.OutcomeNotFound, OfficeNumber: 7, Err: apperrors.ErrNotFound}
	rec = s.serve(postForm("/gef/delete/7", url.Values{}))
	s.Equal("/", rec.Header().Get(echo.HeaderLocation))
	s.Equal(utils.FlashWarning, flashesFrom(s.Echo, rec)[0].Category)
}

func (s *OfficeControllerSuite) TestShowEdit_Missing() {
	s.Offices.editErr = fmt.Errorf("gef 5: %w", apperrors.ErrNotFound)

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/gef/edit/5", nil))

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/", rec.Header().Get(echo.HeaderLocation))
	s.Equal(utils.FlashWarning, flashesFrom(s.Echo, rec)[0].Category)
}

func (s *OfficeControllerSuite) TestShowEdit_LoadsRegionDistricts() {
	s.Offices.edit = &dto.OfficeEditDTO{
		Office:     entities.Office{Number: 5, LegalName: "Bureau B", DistrictCode: null.Int64From(16001)},
		RegionCode: null.Int64From(16),
	}
	s.Reference.warnings = []string{"Impossible de charger la liste des agréments."}

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/gef/edit/5", nil))

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(views.PageEdit, s.Renderer.name)
	s.Require().NotNil(s.Reference.lastRegion)
	s.Equal(int64(16), *s.Reference.lastRegion)

	page, ok := s.Renderer.page.(views.Page)
	s.Require().True(ok)
	data, ok := page.Data.(views.OfficeFormData)
	s.Require().True(ok)
	s.Equal("/gef/update/5", data.Action)
	s.Require().Len(page.Flashes, 1)
	s.Equal(utils.FlashWarning, page.Flashes[0].Category)
}

func (s *OfficeControllerSuite) TestShowEdit_GenericErrorRedirects() {
	s.Offices.editErr = errors.New("connection refused")

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/gef/edit/5", nil))

	s.Equal("/", rec.Header().Get(echo.HeaderLocation))
	s.Equal(utils.FlashDanger, flashesFrom(s.Echo, rec)[0].Category)
}

func (s *OfficeControllerSuite) TestFilter_BindsQuery() {
	s.Filter.page = &dto.OfficeFilterPage{Warnings: []string{"La recherche a échoué, aucun résultat à afficher."}}

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/gef/filter?wilaya=16&equipements=1&equipements=2&agrements=x", nil))

	s.Equal(http.StatusOK, rec.Code)
	s.Equal(views.PageFilter, s.Renderer.name)
	s.Require().NotNil(s.Filter.lastFilter.RegionCode)
	s.Equal(int64(16), *s.Filter.lastFilter.RegionCode)
	s.Equal([]int64{1, 2}, s.Filter.lastFilter.EquipmentTypeIDs)
	s.Empty(s.Filter.lastFilter.ApprovalTypeIDs)

	page := s.Renderer.page.(views.Page)
	s.Require().Len(page.Flashes, 1)
	s.Equal(utils.FlashWarning, page.Flashes[0].Category)
}

func (s *OfficeControllerSuite) TestExport_WritesWorkbook() {
	s.Filter.items = []dto.OfficeListItemDTO{{
		Number:       1001,
		LegalName:    "Bureau A",
		RegionName:   "Alger",
		DistrictName: "Alger Centre",
		Status:       "ouvert",
		Situation:    "actif",
		Equipments:   []dto.EquipmentLinkDTO{{TypeID: 1, Name: "Ordinateur", Quantity: 3}},
		Approvals:    []dto.ApprovalLinkDTO{{TypeID: 5, Name: "Agrément A"}},
	}}

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/gef/filter/export?wilaya=16", nil))

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get(echo.HeaderContentDisposition), ".xlsx")

	f, err := excelize.OpenReader(rec.Body)
	s.Require().NoError(err)
	defer f.Close()
	rows, err := f.GetRows("GEF")
	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("Numéro", rows[0][0])
	s.Equal([]string{"1001", "Bureau A", "Alger", "Alger Centre", "ouvert", "actif", "Ordinateur (3)", "Agrément A"}, rows[1])
}

func (s *OfficeControllerSuite) TestExport_FailureRedirectsToFilter() {
	s.Filter.err = errors.New("timeout")

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/gef/filter/export?wilaya=16", nil))

	s.Equal(http.StatusSeeOther, rec.Code)
	s.Equal("/gef/filter?wilaya=16", rec.Header().Get(echo.HeaderLocation))
}

func TestOfficeController(t *testing.T) {
	suite.Run(t, new(OfficeControllerSuite))
}

func TestFormErrorMessage(t *testing.T) {
	assert.Equal(t, "Champ nim invalide", formErrorMessage(apperrors.NewInvalidInputError("Champ nim invalide")))
	require.Equal(t, "boom", formErrorMessage(errors.New("boom")))
}
