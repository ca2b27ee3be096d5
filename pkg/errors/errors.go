package errors

import "fmt"

var (
	// Запись
	ErrDuplicateKey = fmt.Errorf("запись с таким ключом уже существует")
	ErrNotFound     = fmt.Errorf("запись не найдена")
	ErrPersistence  = fmt.Errorf("ошибка сохранения в базе данных")

	// Чтение
	ErrQuery = fmt.Errorf("ошибка выполнения запроса")

	// Общие
	ErrValidation = fmt.Errorf("ошибка валидации")
)

// HttpError несёт пользовательское сообщение отдельно от технической причины.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Details: details}
}

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func (e *InvalidInputError) Unwrap() error { return ErrValidation }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
