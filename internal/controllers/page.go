package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"ogef/internal/views"
	"ogef/pkg/middleware"
	"ogef/pkg/utils"
)

// renderPage отдаёт страницу с накопленными flash-сообщениями.
func renderPage(ctx echo.Context, flasher *utils.Flasher, name, title string, data interface{}) error {
	err := ctx.Render(http.StatusOK, name, views.Page{
		Title:   title,
		Flashes: flasher.Consume(ctx),
		Data:    data,
	})
	if err != nil {
		middleware.LoggerFromContext(ctx).Error("Ошибка отрисовки страницы", zap.String("page", name), zap.Error(err))
	}
	return err
}

// parseOfficeNumber разбирает номер GEF из пути; numero в БД это INTEGER.
func parseOfficeNumber(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 32)
}

func redirectWithFlash(ctx echo.Context, flasher *utils.Flasher, to, category, message string) error {
	if err := flasher.Add(ctx, category, message); err != nil {
		middleware.LoggerFromContext(ctx).Warn("Не удалось сохранить flash-сообщение",
			zap.String("category", category), zap.String("message", message), zap.Error(err))
	}
	return ctx.Redirect(http.StatusSeeOther, to)
}

// validationMessage превращает ошибки validator в одну строку для flash.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return "champs invalides : " + strings.Join(parts, ", ")
}
