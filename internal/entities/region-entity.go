package entities

import "github.com/aarondl/null/v8"

// Region — вилайя. Связи ссылаются на Code, а не на ID.
type Region struct {
	ID   int64       `json:"id"`
	Code int64       `json:"code"`
	Name null.String `json:"nom_wilaya"`
}
