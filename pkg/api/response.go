package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "ogef/pkg/errors"
	"ogef/pkg/middleware"
)

// ErrorBody — формат ошибки, который ждёт JS на страницах.
type ErrorBody struct {
	Error string `json:"error"`
}

func JSON[T any](c echo.Context, code int, data T) error {
	return c.JSON(code, data)
}

// ErrorResponse никогда не отдаёт наружу сырой panic: только код и сообщение.
// Пишет в логгер запроса, положенный middleware.InjectLogger.
func ErrorResponse(c echo.Context, err error) error {
	code := http.StatusInternalServerError
	msg := "Erreur interne du serveur"

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		msg = httpErr.Message
		if httpErr.Err != nil {
			msg = msg + ": " + httpErr.Err.Error()
		}
	}

	middleware.LoggerFromContext(c).Error("API Error",
		zap.Int("code", code),
		zap.Error(err),
	)

	return c.JSON(code, ErrorBody{Error: msg})
}
