// pkg/constants/constants.go
package constants

//============== UPLOAD CONTEXTS ==============

// UploadContext определяет тип для контекстов загрузки файлов.
type UploadContext string

const (
	// UploadContextOfficePhoto используется для фотографии помещения GEF.
	UploadContextOfficePhoto UploadContext = "gef_photo"
)

// String возвращает строковое представление контекста.
func (uc UploadContext) String() string {
	return string(uc)
}

//============== OFFICE SITUATIONS ==============

// Значения колонки situation, которые предлагает форма.
const (
	SituationActive    = "actif"
	SituationSuspended = "suspendu"
	SituationClosed    = "fermé"
)
