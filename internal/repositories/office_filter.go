package repositories

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ogef/internal/dto"
	db "ogef/internal/infrastructure/bd"
)

// Названия оборудования и агрементов собираются коррелированными json_agg,
// чтобы не делать по запросу на строку.
const (
	officeEquipmentAgg = `COALESCE((
		SELECT json_agg(json_build_object('id', t.id_type, 'nom', t.nom_type, 'quantite', COALESCE(ge.quantite, 1)) ORDER BY t.nom_type)
		FROM gef_equipement ge JOIN type_equipement t ON t.id_type = ge.id_type
		WHERE ge.n_gef = g.numero), '[]') AS equipements`
	officeApprovalAgg = `COALESCE((
		SELECT json_agg(json_build_object('id', a.id, 'nom', a.nom, 'date', COALESCE(to_char(ga.date_obtention, 'YYYY-MM-DD'), '')) ORDER BY a.nom)
		FROM gef_agrements ga JOIN agrements a ON a.id = ga.agrement_id
		WHERE ga.gef_n = g.numero), '[]') AS agrements`
)

type OfficeFilterRepositoryInterface interface {
	List(ctx context.Context, filter dto.OfficeFilter) ([]dto.OfficeListItemDTO, error)
}

type officeFilterRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOfficeFilterRepository(storage *pgxpool.Pool, logger *zap.Logger) OfficeFilterRepositoryInterface {
	return &officeFilterRepository{storage: storage, logger: logger}
}

// buildOfficeFilterQuery: предикаты объединяются через AND, внутри множества
// оборудования или агрементов достаточно одной связи.
func buildOfficeFilterQuery(filter dto.OfficeFilter) sq.SelectBuilder {
	b := sq.Select(
		"g.numero",
		"g.n_p",
		"COALESCE(g.email, '')",
		"COALESCE(g.adresse, '')",
		"COALESCE(g.statut_bureau, '')",
		"COALESCE(g.situation, '')",
		"COALESCE(c.nom_commun, '')",
		"COALESCE(w.nom_wilaya, '')",
		officeEquipmentAgg,
		officeApprovalAgg,
	).
		From("gef g").
		LeftJoin("commune c ON c.code_commu = g.commune_c").
		LeftJoin("wilaya w ON w.code = c.code_wilaya")

	b = db.WhereEqIfSet(b, "c.code_wilaya", filter.RegionCode)
	b = db.WhereEqIfSet(b, "g.commune_c", filter.DistrictCode)
	b = db.WhereEqIfSet(b, "g.statut_bureau", filter.Status)
	b = db.WhereEqIfSet(b, "g.situation", filter.Situation)
	b = db.WhereHasAnyLink(b, "gef_equipement", "n_gef", "g.numero", "id_type", filter.EquipmentTypeIDs)
	b = db.WhereHasAnyLink(b, "gef_agrements", "gef_n", "g.numero", "agrement_id", filter.ApprovalTypeIDs)

	return b.OrderBy("g.numero ASC").PlaceholderFormat(sq.Dollar)
}

func (r *officeFilterRepository) List(ctx context.Context, filter dto.OfficeFilter) ([]dto.OfficeListItemDTO, error) {
	query, args, err := buildOfficeFilterQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL фильтра: %w", err)
	}

	r.logger.Debug("Фильтр GEF", zap.String("sql", query), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения фильтра: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (dto.OfficeListItemDTO, error) {
		var it dto.OfficeListItemDTO
		err := row.Scan(
			&it.Number, &it.LegalName, &it.Email, &it.Address, &it.Status, &it.Situation,
			&it.DistrictName, &it.RegionName, &it.Equipments, &it.Approvals,
		)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования результатов фильтра: %w", err)
	}
	return items, nil
}
