package types

// DashboardCounts: три счётчика главной страницы.
// Valid=false означает, что подсчёт не удался и вместо чисел показывается "N/A".
type DashboardCounts struct {
	OfficeCount int64 `json:"gef_count"`
	StaffCount  int64 `json:"personnel_count"`
	RegionCount int64 `json:"wilaya_count"`
	Valid       bool  `json:"-"`
}

func (d DashboardCounts) Display(v int64) string {
	if !d.Valid {
		return "N/A"
	}
	return formatInt(v)
}
