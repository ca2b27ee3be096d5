package seeders

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ogef/internal/repositories"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cellName, &r))
	}
	path := filepath.Join(t.TempDir(), "communes.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadCommuneRows_SkipsHeaderAndBlanks(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"code_wilaya", "nom_wilaya", "code_commune", "nom_commune"},
		{16, "Alger", 16001, " Alger Centre "},
		{},
		{31, "Oran", 31001, "Oran"},
	})

	rows, err := readCommuneRows(path)
	require.NoError(t, err)
	assert.Equal(t, []communeRow{
		{RegionCode: 16, RegionName: "Alger", DistrictCode: 16001, DistrictName: "Alger Centre"},
		{RegionCode: 31, RegionName: "Oran", DistrictCode: 31001, DistrictName: "Oran"},
	}, rows)
}

func TestParseCommuneRows_Errors(t *testing.T) {
	_, err := parseCommuneRows([][]string{{"16", "Alger", "x", "Alger Centre"}})
	assert.ErrorContains(t, err, "код коммуны")

	_, err = parseCommuneRows([][]string{{"16", "Alger"}})
	assert.ErrorContains(t, err, "4 колонки")

	rows, err := parseCommuneRows([][]string{{"16", "Alger", "16001", "Alger Centre"}})
	require.NoError(t, err)
	assert.Len(t, rows, 1, "первая строка с числовым кодом это данные, а не шапка")
}

func TestReadCommuneRows_MissingFile(t *testing.T) {
	_, err := readCommuneRows(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}

func TestFlushReferenceCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	cache := repositories.NewRedisCacheRepository(client)
	ctx := context.Background()

	require.NoError(t, mr.Set(repositories.CacheKeyRegions, "[]"))
	require.NoError(t, mr.Set(repositories.CacheKeyPrefix+"communes:16", "[]"))
	require.NoError(t, mr.Set("other:key", "1"))

	n, err := FlushReferenceCache(ctx, cache)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.True(t, mr.Exists("other:key"))
	assert.False(t, mr.Exists(repositories.CacheKeyRegions))
}
