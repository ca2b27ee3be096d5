package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"ogef/internal/dto"
	"ogef/internal/entities"
	"ogef/internal/repositories"
	apperrors "ogef/pkg/errors"
	"ogef/pkg/types"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// BaseService поверх miniredis.
func newTestBase(t *testing.T) (*BaseService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewBaseService(repositories.NewRedisCacheRepository(client), time.Minute, zap.NewNop()), mr
}

// fakeTxManager просто вызывает fn: откат проверяется в интеграционных тестах.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	return fn(nil)
}

type fakeOfficeRepo struct {
	offices  map[int64]entities.Office
	children map[int64]entities.OfficeChildren

	existsErr   error
	createErr   error
	childrenErr error
	createCalls int
}

func newFakeOfficeRepo() *fakeOfficeRepo {
	return &fakeOfficeRepo{
		offices:  make(map[int64]entities.Office),
		children: make(map[int64]entities.OfficeChildren),
	}
}

func (r *fakeOfficeRepo) ExistsByNumber(_ context.Context, _ pgx.Tx, number int64) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.offices[number]
	return ok, nil
}

func (r *fakeOfficeRepo) FindByNumber(_ context.Context, _ pgx.Tx, number int64) (*entities.Office, error) {
	office, ok := r.offices[number]
	if !ok {
		return nil, fmt.Errorf("gef %d: %w", number, apperrors.ErrNotFound)
	}
	return &office, nil
}

func (r *fakeOfficeRepo) FindForEdit(_ context.Context, number int64) (*dto.OfficeEditDTO, error) {
	office, ok := r.offices[number]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &dto.OfficeEditDTO{Office: office}, nil
}

func (r *fakeOfficeRepo) Create(_ context.Context, _ pgx.Tx, office entities.Office) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	r.offices[office.Number] = office
	return nil
}

// Update повторяет COALESCE(photo_filename): пустое фото не затирает старое.
func (r *fakeOfficeRepo) Update(_ context.Context, _ pgx.Tx, office entities.Office) error {
	current, ok := r.offices[office.Number]
	if !ok {
		return apperrors.ErrNotFound
	}
	if !office.PhotoFilename.Valid {
		office.PhotoFilename = current.PhotoFilename
	}
	r.offices[office.Number] = office
	return nil
}

func (r *fakeOfficeRepo) Delete(_ context.Context, _ pgx.Tx, number int64) (null.String, error) {
	office, ok := r.offices[number]
	if !ok {
		return null.String{}, fmt.Errorf("gef %d: %w", number, apperrors.ErrNotFound)
	}
	delete(r.offices, number)
	delete(r.children, number)
	return office.PhotoFilename, nil
}

func (r *fakeOfficeRepo) ReplaceChildren(_ context.Context, _ pgx.Tx, number int64, ch entities.OfficeChildren) error {
	if r.childrenErr != nil {
		return r.childrenErr
	}
	r.children[number] = ch
	return nil
}

type fakeFileStorage struct {
	saved   []string
	deleted []string
}

func (s *fakeFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	if _, err := io.Copy(io.Discard, file); err != nil {
		return "", err
	}
	path := fmt.Sprintf("%s/2024/01/01/%d-%s", prefix, len(s.saved)+1, originalFileName)
	s.saved = append(s.saved, path)
	return path, nil
}

func (s *fakeFileStorage) Delete(filePath string) error {
	s.deleted = append(s.deleted, filePath)
	return nil
}

func photo(name string) *dto.PhotoUpload {
	return &dto.PhotoUpload{File: bytes.NewReader(pngHeader), Filename: name}
}

type fakeReferenceRepo struct {
	regions        []entities.Region
	districts      []entities.District
	equipmentTypes []entities.EquipmentType
	approvalTypes  []entities.ApprovalType
	approvalErr    error
	regionCalls    int
}

func (r *fakeReferenceRepo) ListRegions(context.Context) ([]entities.Region, error) {
	r.regionCalls++
	return r.regions, nil
}

func (r *fakeReferenceRepo) ListDistrictsByRegion(_ context.Context, regionCode int64) ([]entities.District, error) {
	var out []entities.District
	for _, d := range r.districts {
		if d.RegionCode.Valid && d.RegionCode.Int64 == regionCode {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeReferenceRepo) ListEquipmentTypes(context.Context) ([]entities.EquipmentType, error) {
	return r.equipmentTypes, nil
}

func (r *fakeReferenceRepo) ListApprovalTypes(context.Context) ([]entities.ApprovalType, error) {
	return r.approvalTypes, r.approvalErr
}

type fakeReadModelRepo struct {
	districts    []dto.DistrictOptionDTO
	summary      []dto.OfficeSummaryDTO
	detail       *dto.OfficeDetailResponse
	err          error
	summaryCalls int
}

func (r *fakeReadModelRepo) ListDistrictOptions(context.Context, int64) ([]dto.DistrictOptionDTO, error) {
	return r.districts, r.err
}

func (r *fakeReadModelRepo) ListOfficesSummary(context.Context) ([]dto.OfficeSummaryDTO, error) {
	r.summaryCalls++
	return r.summary, r.err
}

func (r *fakeReadModelRepo) GetOfficeDetail(context.Context, int64) (*dto.OfficeDetailResponse, error) {
	return r.detail, r.err
}

type fakeFilterRepo struct {
	items []dto.OfficeListItemDTO
	err   error
}

func (r *fakeFilterRepo) List(context.Context, dto.OfficeFilter) ([]dto.OfficeListItemDTO, error) {
	return r.items, r.err
}

type fakeDashboardRepo struct {
	counts *types.DashboardCounts
	err    error
}

func (r *fakeDashboardRepo) GetCounts(context.Context) (*types.DashboardCounts, error) {
	return r.counts, r.err
}
