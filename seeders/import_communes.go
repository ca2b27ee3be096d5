package seeders

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xuri/excelize/v2"

	"ogef/internal/repositories"
)

// communeRow — строка листа: code_wilaya | nom_wilaya | code_commune | nom_commune.
type communeRow struct {
	RegionCode   int64
	RegionName   string
	DistrictCode int64
	DistrictName string
}

// ImportCommunes читает первый лист XLSX и добавляет недостающие вилайи и коммуны.
// Возвращает число обработанных строк.
func ImportCommunes(ctx context.Context, db *pgxpool.Pool, path string) (int, error) {
	rows, err := readCommuneRows(path)
	if err != nil {
		return 0, err
	}
	log.Printf("  - Прочитано строк: %d (%s)", len(rows), path)

	err = repositories.NewTxManager(db).RunInTransaction(ctx, func(tx pgx.Tx) error {
		seen := make(map[int64]bool)
		for _, r := range rows {
			if !seen[r.RegionCode] {
				if err := upsertRegion(ctx, tx, r.RegionCode, r.RegionName); err != nil {
					return fmt.Errorf("wilaya %d: %w", r.RegionCode, err)
				}
				seen[r.RegionCode] = true
			}
			if err := upsertDistrict(ctx, tx, r.DistrictCode, r.DistrictName, r.RegionCode); err != nil {
				return fmt.Errorf("commune %d: %w", r.DistrictCode, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func readCommuneRows(path string) ([]communeRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("в файле %s нет листов", path)
	}
	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return parseCommuneRows(raw)
}

// parseCommuneRows пропускает шапку и пустые строки; строка с нечисловым кодом считается ошибкой.
func parseCommuneRows(raw [][]string) ([]communeRow, error) {
	var out []communeRow
	for i, row := range raw {
		if isBlankRow(row) {
			continue
		}
		if i == 0 && !isNumeric(cell(row, 0)) {
			continue
		}
		if len(row) < 4 {
			return nil, fmt.Errorf("строка %d: ожидалось 4 колонки, получено %d", i+1, len(row))
		}

		regionCode, err := strconv.ParseInt(cell(row, 0), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("строка %d: код вилайи %q", i+1, cell(row, 0))
		}
		districtCode, err := strconv.ParseInt(cell(row, 2), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("строка %d: код коммуны %q", i+1, cell(row, 2))
		}
		out = append(out, communeRow{
			RegionCode:   regionCode,
			RegionName:   cell(row, 1),
			DistrictCode: districtCode,
			DistrictName: cell(row, 3),
		})
	}
	return out, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isNumeric(s string) bool {
	_, err := strconv.ParseInt(s, 10, 64)
	return err == nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
