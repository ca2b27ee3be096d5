package entities

import "github.com/aarondl/null/v8"

type Staff struct {
	ID           int64       `json:"id_personnel"`
	LastName     string      `json:"nom"`
	FirstName    string      `json:"prenom"`
	StartDate    null.Time   `json:"date_debut_travail"`
	Profile      null.String `json:"profile"`
	OfficeNumber int64       `json:"n_gef"`
}
