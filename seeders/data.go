package seeders

var equipmentTypesData = []string{
	"Ordinateur",
	"Imprimante",
	"Scanner",
	"Photocopieur",
	"Onduleur",
	"Climatiseur",
	"Coffre-fort",
}

var approvalTypesData = []string{
	"Agrément d'exercice",
	"Agrément de transport de fonds",
	"Agrément de formation",
	"Agrément sanitaire",
}

type regionSeed struct {
	Code int64
	Name string
}

type districtSeed struct {
	Code       int64
	Name       string
	RegionCode int64
}

// Небольшая выборка; полный список грузится через ImportCommunes.
var regionsData = []regionSeed{
	{Code: 9, Name: "Blida"},
	{Code: 16, Name: "Alger"},
	{Code: 25, Name: "Constantine"},
	{Code: 31, Name: "Oran"},
}

var districtsData = []districtSeed{
	{Code: 9001, Name: "Blida", RegionCode: 9},
	{Code: 9002, Name: "Chebli", RegionCode: 9},
	{Code: 16001, Name: "Alger Centre", RegionCode: 16},
	{Code: 16002, Name: "Sidi M'Hamed", RegionCode: 16},
	{Code: 16003, Name: "El Madania", RegionCode: 16},
	{Code: 25001, Name: "Constantine", RegionCode: 25},
	{Code: 31001, Name: "Oran", RegionCode: 31},
	{Code: 31002, Name: "Gdyel", RegionCode: 31},
}
