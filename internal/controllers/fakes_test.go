package controllers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"ogef/internal/dto"
	"ogef/internal/entities"
	"ogef/pkg/customvalidator"
	"ogef/pkg/types"
	"ogef/pkg/utils"
)

const testSecret = "test-secret"

// stubRenderer запоминает последнюю отрисованную страницу.
type stubRenderer struct {
	name string
	page interface{}
}

func (r *stubRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	r.name = name
	r.page = data
	_, err := fmt.Fprint(w, name)
	return err
}

func newTestEcho() (*echo.Echo, *stubRenderer) {
	e := echo.New()
	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		panic(err)
	}
	e.Validator = utils.NewValidator(v)
	e.Use(utils.NewFlasher(testSecret).Middleware())
	r := &stubRenderer{}
	e.Renderer = r
	return e, r
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

// flashesFrom читает flash-сообщения из cookie ответа так, как это сделает следующий запрос.
func flashesFrom(e *echo.Echo, rec *httptest.ResponseRecorder) []utils.FlashMessage {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	var messages []utils.FlashMessage
	flasher := utils.NewFlasher(testSecret)
	consume := flasher.Middleware()(func(c echo.Context) error {
		messages = flasher.Consume(c)
		return nil
	})
	_ = consume(e.NewContext(req, httptest.NewRecorder()))
	return messages
}

type fakeOfficeService struct {
	outcome    types.WriteOutcome
	lastInput  dto.OfficeInput
	lastNumber int64
	calls      int
	edit       *dto.OfficeEditDTO
	editErr    error
}

func (f *fakeOfficeService) Create(_ context.Context, in dto.OfficeInput) types.WriteOutcome {
	f.calls++
	f.lastInput = in
	return f.outcome
}

func (f *fakeOfficeService) Update(_ context.Context, number int64, in dto.OfficeInput) types.WriteOutcome {
	f.calls++
	f.lastNumber = number
	f.lastInput = in
	return f.outcome
}

func (f *fakeOfficeService) Delete(_ context.Context, number int64) types.WriteOutcome {
	f.calls++
	f.lastNumber = number
	return f.outcome
}

func (f *fakeOfficeService) GetForEdit(_ context.Context, number int64) (*dto.OfficeEditDTO, error) {
	f.lastNumber = number
	return f.edit, f.editErr
}

type fakeFilterService struct {
	page       *dto.OfficeFilterPage
	items      []dto.OfficeListItemDTO
	err        error
	lastFilter dto.OfficeFilter
}

func (f *fakeFilterService) Page(_ context.Context, filter dto.OfficeFilter) *dto.OfficeFilterPage {
	f.lastFilter = filter
	if f.page == nil {
		return &dto.OfficeFilterPage{Filter: filter}
	}
	return f.page
}

func (f *fakeFilterService) List(_ context.Context, filter dto.OfficeFilter) ([]dto.OfficeListItemDTO, error) {
	f.lastFilter = filter
	return f.items, f.err
}

type fakeReferenceService struct {
	lists      dto.ReferenceLists
	warnings   []string
	lastRegion *int64
	districts  []entities.District
}

func (f *fakeReferenceService) Regions(context.Context) ([]entities.Region, error) {
	return f.lists.Regions, nil
}

func (f *fakeReferenceService) DistrictsByRegion(context.Context, int64) ([]entities.District, error) {
	return f.districts, nil
}

func (f *fakeReferenceService) EquipmentTypes(context.Context) ([]entities.EquipmentType, error) {
	return f.lists.EquipmentTypes, nil
}

func (f *fakeReferenceService) ApprovalTypes(context.Context) ([]entities.ApprovalType, error) {
	return f.lists.ApprovalTypes, nil
}

func (f *fakeReferenceService) Lists(_ context.Context, regionCode *int64) (dto.ReferenceLists, []string) {
	f.lastRegion = regionCode
	return f.lists, f.warnings
}

type fakeReadModelService struct {
	districts []dto.DistrictOptionDTO
	summary   *dto.OfficeSummaryListDTO
	detail    *dto.OfficeDetailResponse
	err       error
	lastCode  int64
}

func (f *fakeReadModelService) ListDistrictsByRegion(_ context.Context, regionCode int64) ([]dto.DistrictOptionDTO, error) {
	f.lastCode = regionCode
	return f.districts, f.err
}

func (f *fakeReadModelService) ListOfficesSummary(context.Context) (*dto.OfficeSummaryListDTO, error) {
	return f.summary, f.err
}

func (f *fakeReadModelService) GetOfficeDetail(_ context.Context, number int64) (*dto.OfficeDetailResponse, error) {
	f.lastCode = number
	return f.detail, f.err
}

type fakeDashboardService struct {
	counts types.DashboardCounts
	err    error
}

func (f *fakeDashboardService) GetCounts(context.Context) (types.DashboardCounts, error) {
	return f.counts, f.err
}
