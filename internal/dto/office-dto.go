package dto

import (
	"io"
	"strings"

	"github.com/aarondl/null/v8"

	"ogef/internal/entities"
	"ogef/pkg/constants"
	apperrors "ogef/pkg/errors"
	"ogef/pkg/utils"
)

const DefaultSituation = constants.SituationActive

// OfficeForm — сырые поля HTML-формы добавления/редактирования.
// Списки параллельные: i-й элемент каждого списка описывает одну запись.
type OfficeForm struct {
	Numero            string `form:"numero"`
	LegalName         string `form:"n_p"`
	Email             string `form:"email"`
	Address           string `form:"adresse"`
	DistrictCode      string `form:"commune_c"`
	Status            string `form:"statut_bureau"`
	Situation         string `form:"situation"`
	NIM               string `form:"nim"`
	NIF               string `form:"nif"`
	Observations      string `form:"observations"`
	DateObtained      string `form:"date_obt"`
	BirthDate         string `form:"date_naiss"`
	BirthRegionCode   string `form:"lieu_naiss_wc"`
	BirthDistrictCode string `form:"lieu_naiss_cc"`

	StaffLastNames      []string `form:"personnel_nom"`
	StaffFirstNames     []string `form:"personnel_prenom"`
	StaffProfiles       []string `form:"personnel_profile"`
	StaffStartDates     []string `form:"personnel_date_debut"`
	PhoneTypes          []string `form:"telephone_type"`
	PhoneNumbers        []string `form:"telephone_numero"`
	EquipmentIDs        []string `form:"equipement_id"`
	EquipmentQuantities []string `form:"equipement_quantite"`
	ApprovalIDs         []string `form:"agrement_ids"`

	// agrement_date_<id> → дата; заполняется контроллером из FormParams.
	ApprovalDates map[string]string `form:"-"`
}

const ApprovalDateFieldPrefix = "agrement_date_"

// OfficeInput — типизированный ввод для Create/Update.
type OfficeInput struct {
	Number            int64  `validate:"required,gt=0,max=2147483647"`
	LegalName         string `validate:"required,max=100,gef_text"`
	Email             string `validate:"max=150,gef_email"`
	Address           string `validate:"gef_text"`
	DistrictCode      null.Int64
	Status            string `validate:"max=20,gef_text"`
	Situation         string `validate:"gef_text"`
	NIM               null.Int64
	NIF               null.Int64
	Observations      string `validate:"gef_text"`
	DateObtained      null.Time
	BirthDate         null.Time
	BirthRegionCode   null.Int64
	BirthDistrictCode null.Int64

	Staff     []StaffInput     `validate:"dive"`
	Phones    []PhoneInput     `validate:"dive"`
	Equipment []EquipmentInput `validate:"unique=TypeID,dive"`
	Approvals []ApprovalInput  `validate:"unique=TypeID,dive"`

	// Имена полей с датами, которые пришли, но не разобрались и стали NULL.
	DroppedDates []string `validate:"-"`
	// Новый файл фото из формы; при nil фото не меняется.
	Photo *PhotoUpload `validate:"-"`
	// Относительный путь сохранённого фото, заполняет сервис.
	PhotoFilename string `validate:"-"`
}

type PhotoUpload struct {
	File     io.Reader
	Filename string
}

type StaffInput struct {
	LastName  string `validate:"required,max=100,gef_text"`
	FirstName string `validate:"required,max=100,gef_text"`
	Profile   string `validate:"max=200,gef_text"`
	StartDate null.Time
}

type PhoneInput struct {
	Type   string `validate:"max=30,gef_text"`
	Number string `validate:"required,max=50,gef_text"`
}

type EquipmentInput struct {
	TypeID   int64 `validate:"required,gt=0"`
	Quantity int64 `validate:"gte=0"`
}

type ApprovalInput struct {
	TypeID       int64 `validate:"required,gt=0"`
	DateObtained null.Time
}

// ToInput переводит форму в типизированный ввод. Ошибки разбора чисел
// возвращаются как InvalidInputError; некорректные даты молча становятся NULL
// и перечисляются в DroppedDates.
func (f OfficeForm) ToInput() (OfficeInput, error) {
	var in OfficeInput
	var err error

	numero := strings.TrimSpace(f.Numero)
	if numero == "" {
		return in, apperrors.NewInvalidInputError("Le numéro du GEF est obligatoire.")
	}
	number, err := utils.ParseOptionalInt64(numero)
	if err != nil {
		return in, apperrors.NewInvalidInputError("Numéro de GEF invalide : %q", f.Numero)
	}
	in.Number = number.Int64

	in.LegalName = strings.TrimSpace(f.LegalName)
	in.Email = strings.TrimSpace(f.Email)
	in.Address = strings.TrimSpace(f.Address)
	in.Status = strings.TrimSpace(f.Status)
	in.Situation = strings.TrimSpace(f.Situation)
	in.Observations = strings.TrimSpace(f.Observations)

	intFields := []struct {
		name string
		raw  string
		dst  *null.Int64
	}{
		{"commune_c", f.DistrictCode, &in.DistrictCode},
		{"nim", f.NIM, &in.NIM},
		{"nif", f.NIF, &in.NIF},
		{"lieu_naiss_wc", f.BirthRegionCode, &in.BirthRegionCode},
		{"lieu_naiss_cc", f.BirthDistrictCode, &in.BirthDistrictCode},
	}
	for _, field := range intFields {
		if *field.dst, err = utils.ParseOptionalInt64(field.raw); err != nil {
			return in, apperrors.NewInvalidInputError("Champ %s invalide : %q", field.name, field.raw)
		}
	}

	var dropped bool
	if in.DateObtained, dropped = utils.ParseOptionalDate(f.DateObtained); dropped {
		in.DroppedDates = append(in.DroppedDates, "date_obt")
	}
	if in.BirthDate, dropped = utils.ParseOptionalDate(f.BirthDate); dropped {
		in.DroppedDates = append(in.DroppedDates, "date_naiss")
	}

	for i := 0; i < minLen(f.StaffLastNames, f.StaffFirstNames, f.StaffProfiles); i++ {
		staff := StaffInput{
			LastName:  strings.TrimSpace(f.StaffLastNames[i]),
			FirstName: strings.TrimSpace(f.StaffFirstNames[i]),
			Profile:   strings.TrimSpace(f.StaffProfiles[i]),
		}
		if staff.LastName == "" && staff.FirstName == "" && staff.Profile == "" {
			continue
		}
		if i < len(f.StaffStartDates) {
			if staff.StartDate, dropped = utils.ParseOptionalDate(f.StaffStartDates[i]); dropped {
				in.DroppedDates = append(in.DroppedDates, "personnel_date_debut")
			}
		}
		in.Staff = append(in.Staff, staff)
	}

	for i := 0; i < minLen(f.PhoneTypes, f.PhoneNumbers); i++ {
		phone := PhoneInput{
			Type:   strings.TrimSpace(f.PhoneTypes[i]),
			Number: strings.TrimSpace(f.PhoneNumbers[i]),
		}
		if phone.Type == "" && phone.Number == "" {
			continue
		}
		in.Phones = append(in.Phones, phone)
	}

	for i := 0; i < minLen(f.EquipmentIDs, f.EquipmentQuantities); i++ {
		rawID := strings.TrimSpace(f.EquipmentIDs[i])
		if rawID == "" {
			continue
		}
		typeID, err := utils.ParseOptionalInt64(rawID)
		if err != nil {
			return in, apperrors.NewInvalidInputError("Type d'équipement invalide : %q", rawID)
		}
		quantity, err := utils.ParseOptionalInt64(f.EquipmentQuantities[i])
		if err != nil {
			return in, apperrors.NewInvalidInputError("Quantité invalide : %q", f.EquipmentQuantities[i])
		}
		eq := EquipmentInput{TypeID: typeID.Int64, Quantity: 1}
		if quantity.Valid {
			eq.Quantity = quantity.Int64
		}
		in.Equipment = append(in.Equipment, eq)
	}

	for _, rawID := range f.ApprovalIDs {
		rawID = strings.TrimSpace(rawID)
		if rawID == "" {
			continue
		}
		typeID, err := utils.ParseOptionalInt64(rawID)
		if err != nil {
			return in, apperrors.NewInvalidInputError("Agrément invalide : %q", rawID)
		}
		approval := ApprovalInput{TypeID: typeID.Int64}
		if approval.DateObtained, dropped = utils.ParseOptionalDate(f.ApprovalDates[rawID]); dropped {
			in.DroppedDates = append(in.DroppedDates, ApprovalDateFieldPrefix+rawID)
		}
		in.Approvals = append(in.Approvals, approval)
	}

	return in, nil
}

// ToEntity собирает строку gef. Пустой текст становится NULL.
func (in OfficeInput) ToEntity() entities.Office {
	return entities.Office{
		Number:            in.Number,
		LegalName:         in.LegalName,
		Email:             utils.StringToNullString(in.Email),
		Address:           utils.StringToNullString(in.Address),
		Status:            utils.StringToNullString(in.Status),
		DistrictCode:      in.DistrictCode,
		Situation:         utils.StringToNullString(in.Situation),
		NIM:               in.NIM,
		NIF:               in.NIF,
		Observations:      utils.StringToNullString(in.Observations),
		DateObtained:      in.DateObtained,
		BirthDate:         in.BirthDate,
		BirthRegionCode:   in.BirthRegionCode,
		BirthDistrictCode: in.BirthDistrictCode,
		PhotoFilename:     utils.StringToNullString(in.PhotoFilename),
	}
}

// Children собирает дочерние строки, привязанные к номеру бюро.
func (in OfficeInput) Children() entities.OfficeChildren {
	var ch entities.OfficeChildren
	for _, s := range in.Staff {
		ch.Staff = append(ch.Staff, entities.Staff{
			LastName:     s.LastName,
			FirstName:    s.FirstName,
			Profile:      utils.StringToNullString(s.Profile),
			StartDate:    s.StartDate,
			OfficeNumber: in.Number,
		})
	}
	for _, p := range in.Phones {
		ch.Phones = append(ch.Phones, entities.Phone{
			Type:         utils.StringToNullString(p.Type),
			Number:       p.Number,
			OfficeNumber: in.Number,
		})
	}
	for _, e := range in.Equipment {
		ch.Equipment = append(ch.Equipment, entities.OfficeEquipment{
			OfficeNumber:    in.Number,
			EquipmentTypeID: e.TypeID,
			Quantity:        e.Quantity,
		})
	}
	for _, a := range in.Approvals {
		ch.Approvals = append(ch.Approvals, entities.OfficeApproval{
			OfficeNumber:   in.Number,
			ApprovalTypeID: a.TypeID,
			DateObtained:   a.DateObtained,
		})
	}
	return ch
}

// OfficeEditDTO содержит всё, что нужно форме редактирования.
type OfficeEditDTO struct {
	Office              entities.Office
	RegionCode          null.Int64
	Staff               []entities.Staff
	Phones              []entities.Phone
	EquipmentQuantities map[int64]int64
	ApprovalDates       map[int64]string
}

func (e OfficeEditDTO) HasApproval(id int64) bool {
	_, ok := e.ApprovalDates[id]
	return ok
}

func (e OfficeEditDTO) HasEquipment(id int64) bool {
	_, ok := e.EquipmentQuantities[id]
	return ok
}

func minLen(lists ...[]string) int {
	if len(lists) == 0 {
		return 0
	}
	n := len(lists[0])
	for _, l := range lists[1:] {
		if len(l) < n {
			n = len(l)
		}
	}
	return n
}
