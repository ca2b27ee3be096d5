package dto

import (
	"strconv"
	"strings"
)

// OfficeFilterQuery — параметры строки запроса страницы фильтра.
type OfficeFilterQuery struct {
	Region     string   `query:"wilaya"`
	District   string   `query:"commune"`
	Status     string   `query:"statut_bureau"`
	Situation  string   `query:"situation"`
	Equipments []string `query:"equipements"`
	Approvals  []string `query:"agrements"`
}

// OfficeFilter — разобранный фильтр. nil/пустой срез означает «измерение не задано».
type OfficeFilter struct {
	RegionCode       *int64
	DistrictCode     *int64
	Status           *string
	Situation        *string
	EquipmentTypeIDs []int64
	ApprovalTypeIDs  []int64
}

// ToFilter разбирает параметры. Нечисловые и нулевые значения игнорируются.
func (q OfficeFilterQuery) ToFilter() OfficeFilter {
	return OfficeFilter{
		RegionCode:       positiveInt(q.Region),
		DistrictCode:     positiveInt(q.District),
		Status:           nonEmpty(q.Status),
		Situation:        nonEmpty(q.Situation),
		EquipmentTypeIDs: positiveInts(q.Equipments),
		ApprovalTypeIDs:  positiveInts(q.Approvals),
	}
}

func positiveInt(s string) *int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}

func positiveInts(list []string) []int64 {
	var out []int64
	for _, s := range list {
		if v := positiveInt(s); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// OfficeListItemDTO: строка результата фильтра с уже разрешёнными названиями.
type OfficeListItemDTO struct {
	Number       int64
	LegalName    string
	Email        string
	Address      string
	Status       string
	Situation    string
	DistrictName string
	RegionName   string
	Equipments   []EquipmentLinkDTO
	Approvals    []ApprovalLinkDTO
}

type EquipmentLinkDTO struct {
	TypeID   int64  `json:"id"`
	Name     string `json:"nom"`
	Quantity int64  `json:"quantite"`
}

type ApprovalLinkDTO struct {
	TypeID       int64  `json:"id"`
	Name         string `json:"nom"`
	DateObtained string `json:"date"`
}

// OfficeFilterPage содержит всё, что нужно странице фильтра.
type OfficeFilterPage struct {
	Filter    OfficeFilter
	Results   []OfficeListItemDTO
	Reference ReferenceLists
	// Предупреждения для пользователя при частичной деградации.
	Warnings []string
}
