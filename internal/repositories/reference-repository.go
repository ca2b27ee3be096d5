package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ogef/internal/entities"
)

// ReferenceRepositoryInterface — справочники для форм и фильтра, все по имени.
type ReferenceRepositoryInterface interface {
	ListRegions(ctx context.Context) ([]entities.Region, error)
	ListDistrictsByRegion(ctx context.Context, regionCode int64) ([]entities.District, error)
	ListEquipmentTypes(ctx context.Context) ([]entities.EquipmentType, error)
	ListApprovalTypes(ctx context.Context) ([]entities.ApprovalType, error)
}

type referenceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewReferenceRepository(storage *pgxpool.Pool, logger *zap.Logger) ReferenceRepositoryInterface {
	return &referenceRepository{storage: storage, logger: logger}
}

func (r *referenceRepository) ListRegions(ctx context.Context) ([]entities.Region, error) {
	query, args, err := sq.Select("id", "code", "nom_wilaya").
		From("wilaya").
		OrderBy("nom_wilaya", "code").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения wilaya: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.Region, error) {
		var w entities.Region
		err := row.Scan(&w.ID, &w.Code, &w.Name)
		return w, err
	})
}

func (r *referenceRepository) ListDistrictsByRegion(ctx context.Context, regionCode int64) ([]entities.District, error) {
	query, args, err := sq.Select("code_commu", "nom_commun", "code_wilaya").
		From("commune").
		Where(sq.Eq{"code_wilaya": regionCode}).
		OrderBy("nom_commun", "code_commu").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения commune: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.District, error) {
		var c entities.District
		err := row.Scan(&c.Code, &c.Name, &c.RegionCode)
		return c, err
	})
}

func (r *referenceRepository) ListEquipmentTypes(ctx context.Context) ([]entities.EquipmentType, error) {
	query, args, err := sq.Select("id_type", "nom_type").
		From("type_equipement").
		OrderBy("nom_type").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения type_equipement: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.EquipmentType, error) {
		var t entities.EquipmentType
		err := row.Scan(&t.ID, &t.Name)
		return t, err
	})
}

func (r *referenceRepository) ListApprovalTypes(ctx context.Context) ([]entities.ApprovalType, error) {
	query, args, err := sq.Select("id", "nom").
		From("agrements").
		OrderBy("nom").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения agrements: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (entities.ApprovalType, error) {
		var a entities.ApprovalType
		err := row.Scan(&a.ID, &a.Name)
		return a, err
	})
}
