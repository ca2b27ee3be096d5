package entities

import "github.com/aarondl/null/v8"

// ApprovalType: вид агремента.
type ApprovalType struct {
	ID   int64  `json:"id"`
	Name string `json:"nom"`
}

type OfficeApproval struct {
	ID             int64     `json:"id"`
	OfficeNumber   int64     `json:"gef_n"`
	ApprovalTypeID int64     `json:"agrement_id"`
	DateObtained   null.Time `json:"date_obtention"`
}
