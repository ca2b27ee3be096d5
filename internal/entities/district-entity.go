package entities

import "github.com/aarondl/null/v8"

// District: коммуна внутри вилайи.
type District struct {
	Code       int64       `json:"code_commu"`
	Name       null.String `json:"nom_commun"`
	RegionCode null.Int64  `json:"code_wilaya"`
}
