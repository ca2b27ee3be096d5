package dto

import "ogef/internal/entities"

// ReferenceLists: справочники для выпадающих списков и чекбоксов форм.
type ReferenceLists struct {
	Regions        []entities.Region
	Districts      []entities.District
	EquipmentTypes []entities.EquipmentType
	ApprovalTypes  []entities.ApprovalType
}
