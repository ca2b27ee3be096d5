package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/aarondl/null/v8"
	"github.com/labstack/echo/v4"

	"ogef/internal/dto"
	"ogef/internal/entities"
	"ogef/pkg/constants"
	"ogef/pkg/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

// Имена страниц; у каждой свой набор layout + страница.
const (
	PageDashboard = "dashboard.html"
	PageAddOffice = "add_gef.html"
	PageEdit      = "edit_gef.html"
	PageFilter    = "filter_gef.html"
)

// Page: общая обёртка данных для layout.
type Page struct {
	Title   string
	Flashes []utils.FlashMessage
	Data    interface{}
}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"formatDate": utils.FormatDate,
		"nullStr":    utils.NullStringToString,
		"nullInt": func(v null.Int64) string {
			if !v.Valid {
				return ""
			}
			return strconv.FormatInt(v.Int64, 10)
		},
		"hasID": utils.ContainsInt64,
		"situations": func() []string {
			return []string{constants.SituationActive, constants.SituationSuspended, constants.SituationClosed}
		},
		"deref": func(v *int64) int64 {
			if v == nil {
				return 0
			}
			return *v
		},
		"derefStr": func(v *string) string {
			if v == nil {
				return ""
			}
			return *v
		},
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageDashboard, PageAddOffice, PageEdit, PageFilter} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/office_form.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("шаблон %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render реализует echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("шаблон %s не найден", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// OfficeFormData: данные форм добавления и редактирования. Edit == nil для новой записи.
type OfficeFormData struct {
	Action         string
	Edit           *dto.OfficeEditDTO
	Reference      dto.ReferenceLists
	BirthDistricts []entities.District
}
