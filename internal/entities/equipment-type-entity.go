package entities

type EquipmentType struct {
	ID   int64  `json:"id_type"`
	Name string `json:"nom_type"`
}

// OfficeEquipment — связь бюро и типа оборудования, ключ (n_gef, id_type).
type OfficeEquipment struct {
	OfficeNumber    int64 `json:"n_gef"`
	EquipmentTypeID int64 `json:"id_type"`
	Quantity        int64 `json:"quantite"`
}
