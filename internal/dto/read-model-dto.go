package dto

import "github.com/aarondl/null/v8"

// DistrictOptionDTO — элемент выпадающего списка коммун.
type DistrictOptionDTO struct {
	Code int64  `json:"code"`
	Name string `json:"nom"`
}

type OfficeSummaryDTO struct {
	Number int64  `json:"numero"`
	Name   string `json:"nom"`
}

type OfficeSummaryListDTO struct {
	Gefs []OfficeSummaryDTO `json:"gefs"`
}

type OfficeDetailDTO struct {
	Number        int64      `json:"numero"`
	Name          string     `json:"nom"`
	Email         string     `json:"email"`
	Address       string     `json:"adresse"`
	Status        string     `json:"statut_bureau"`
	Situation     string     `json:"situation"`
	Observations  string     `json:"observations"`
	DateObtained  string     `json:"date_obt"`
	BirthDate     string     `json:"date_naiss"`
	NIM           null.Int64 `json:"nim"`
	NIF           null.Int64 `json:"nif"`
	DistrictName  string     `json:"commune_adresse"`
	RegionName    string     `json:"wilaya_adresse"`
	BirthDistrict string     `json:"commune_naissance"`
	BirthRegion   string     `json:"wilaya_naissance"`
	PhotoURL      string     `json:"photo,omitempty"`
}

type StaffDetailDTO struct {
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Profile   string `json:"profile"`
}

type PhoneDetailDTO struct {
	Type   string `json:"type"`
	Number string `json:"numero"`
}

type EquipmentDetailDTO struct {
	Name     string `json:"nom"`
	Quantity int64  `json:"quantite"`
}

type ApprovalDetailDTO struct {
	Name string `json:"nom"`
	Date string `json:"date"`
}

// OfficeDetailResponse — полная карточка GEF. Если GEF не найден, Gef отсутствует,
// а списки пустые.
type OfficeDetailResponse struct {
	Gef        *OfficeDetailDTO     `json:"gef,omitempty"`
	Employees  []StaffDetailDTO     `json:"employees"`
	Telephones []PhoneDetailDTO     `json:"telephones"`
	Equipments []EquipmentDetailDTO `json:"equipments"`
	Agrements  []ApprovalDetailDTO  `json:"agrements"`
}

// NewEmptyDetailResponse возвращает ответ без GEF, но с пустыми (не null) списками.
func NewEmptyDetailResponse() OfficeDetailResponse {
	return OfficeDetailResponse{
		Employees:  []StaffDetailDTO{},
		Telephones: []PhoneDetailDTO{},
		Equipments: []EquipmentDetailDTO{},
		Agrements:  []ApprovalDetailDTO{},
	}
}
