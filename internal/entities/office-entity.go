package entities

import "github.com/aarondl/null/v8"

// Office — бюро GEF. Number (numero) это бизнес-ключ, на него ссылаются все дочерние таблицы.
type Office struct {
	ID                int64       `json:"id"`
	Number            int64       `json:"numero"`
	LegalName         string      `json:"n_p"`
	Email             null.String `json:"email"`
	Address           null.String `json:"adresse"`
	Status            null.String `json:"statut_bureau"`
	DistrictCode      null.Int64  `json:"commune_c"`
	Situation         null.String `json:"situation"`
	NIM               null.Int64  `json:"nim"`
	NIF               null.Int64  `json:"nif"`
	Observations      null.String `json:"observations"`
	DateObtained      null.Time   `json:"date_obt"`
	BirthDate         null.Time   `json:"date_naiss"`
	BirthRegionCode   null.Int64  `json:"lieu_naiss_wc"`
	BirthDistrictCode null.Int64  `json:"lieu_naiss_cc"`
	PhotoFilename     null.String `json:"photo_filename"`
}

// OfficeChildren — дочерние коллекции бюро, заменяемые целиком при обновлении.
type OfficeChildren struct {
	Staff     []Staff
	Phones    []Phone
	Equipment []OfficeEquipment
	Approvals []OfficeApproval
}
