// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterCustomValidations регистрирует наши правила в переданном валидаторе.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("gef_email", isEmptyOrGoodEmail); err != nil {
		return err
	}
	if err := v.RegisterValidation("gef_text", isPrintableText); err != nil {
		return err
	}
	return nil
}

// Пустой email допустим: колонка nullable.
func isEmptyOrGoodEmail(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	return emailRegex.MatchString(s)
}

// Переводы строк и табуляция разрешены, прочие управляющие символы запрещены.
func isPrintableText(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
