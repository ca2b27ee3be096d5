package entities

import "github.com/aarondl/null/v8"

type Phone struct {
	ID           int64       `json:"id"`
	Type         null.String `json:"type_tel"`
	Number       string      `json:"num"`
	OfficeNumber int64       `json:"n_gef"`
}
