package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ogef/pkg/types"
)

type DashboardRepositoryInterface interface {
	GetCounts(ctx context.Context) (*types.DashboardCounts, error)
}

type DashboardRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDashboardRepository(storage *pgxpool.Pool, logger *zap.Logger) DashboardRepositoryInterface {
	return &DashboardRepository{storage: storage, logger: logger}
}

// GetCounts считает число бюро, сотрудников и вилай, в которых есть хотя бы одно бюро.
func (r *DashboardRepository) GetCounts(ctx context.Context) (*types.DashboardCounts, error) {
	offices := sq.Select("COUNT(*)").From("gef")
	staff := sq.Select("COUNT(*)").From("personnel")
	regions := sq.Select("COUNT(DISTINCT c.code_wilaya)").
		From("gef g").
		Join("commune c ON c.code_commu = g.commune_c")

	counts := &types.DashboardCounts{}
	targets := []struct {
		name string
		b    sq.SelectBuilder
		dst  *int64
	}{
		{"gef", offices, &counts.OfficeCount},
		{"personnel", staff, &counts.StaffCount},
		{"wilaya", regions, &counts.RegionCount},
	}

	for _, t := range targets {
		query, args, err := t.b.PlaceholderFormat(sq.Dollar).ToSql()
		if err != nil {
			return nil, err
		}
		if err := r.storage.QueryRow(ctx, query, args...).Scan(t.dst); err != nil {
			return nil, fmt.Errorf("ошибка подсчёта %s: %w", t.name, err)
		}
	}

	counts.Valid = true
	return counts, nil
}
