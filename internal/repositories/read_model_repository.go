package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ogef/internal/dto"
	apperrors "ogef/pkg/errors"
)

type ReadModelRepositoryInterface interface {
	ListDistrictOptions(ctx context.Context, regionCode int64) ([]dto.DistrictOptionDTO, error)
	ListOfficesSummary(ctx context.Context) ([]dto.OfficeSummaryDTO, error)
	GetOfficeDetail(ctx context.Context, number int64) (*dto.OfficeDetailResponse, error)
}

type readModelRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewReadModelRepository(storage *pgxpool.Pool, logger *zap.Logger) ReadModelRepositoryInterface {
	return &readModelRepository{storage: storage, logger: logger}
}

func (r *readModelRepository) ListDistrictOptions(ctx context.Context, regionCode int64) ([]dto.DistrictOptionDTO, error) {
	query, args, err := sq.Select("code_commu", "COALESCE(nom_commun, '')").
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
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuery, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (dto.DistrictOptionDTO, error) {
		var d dto.DistrictOptionDTO
		err := row.Scan(&d.Code, &d.Name)
		return d, err
	})
}

func (r *readModelRepository) ListOfficesSummary(ctx context.Context) ([]dto.OfficeSummaryDTO, error) {
	query, args, err := sq.Select("numero", "n_p").
		From("gef").
		OrderBy("n_p", "numero").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuery, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (dto.OfficeSummaryDTO, error) {
		var s dto.OfficeSummaryDTO
		err := row.Scan(&s.Number, &s.Name)
		return s, err
	})
}

// GetOfficeDetail: отсутствующее бюро не ошибка, Gef остаётся nil, списки пустые.
func (r *readModelRepository) GetOfficeDetail(ctx context.Context, number int64) (*dto.OfficeDetailResponse, error) {
	resp := dto.NewEmptyDetailResponse()

	query, args, err := sq.Select(
		"g.numero", "g.n_p",
		"COALESCE(g.email, '')", "COALESCE(g.adresse, '')",
		"COALESCE(g.statut_bureau, '')", "COALESCE(g.situation, '')",
		"COALESCE(g.observations, '')",
		"COALESCE(to_char(g.date_obt, 'YYYY-MM-DD'), '')",
		"COALESCE(to_char(g.date_naiss, 'YYYY-MM-DD'), '')",
		"g.nim", "g.nif",
		"COALESCE(c.nom_commun, '')", "COALESCE(w.nom_wilaya, '')",
		"COALESCE(cn.nom_commun, '')", "COALESCE(wn.nom_wilaya, '')",
		"COALESCE(g.photo_filename, '')",
	).
		From("gef g").
		LeftJoin("commune c ON c.code_commu = g.commune_c").
		LeftJoin("wilaya w ON w.code = c.code_wilaya").
		LeftJoin("commune cn ON cn.code_commu = g.lieu_naiss_cc").
		LeftJoin("wilaya wn ON wn.code = COALESCE(g.lieu_naiss_wc, cn.code_wilaya)").
		Where(sq.Eq{"g.numero": number}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var g dto.OfficeDetailDTO
	err = r.storage.QueryRow(ctx, query, args...).Scan(
		&g.Number, &g.Name, &g.Email, &g.Address, &g.Status, &g.Situation, &g.Observations,
		&g.DateObtained, &g.BirthDate, &g.NIM, &g.NIF,
		&g.DistrictName, &g.RegionName, &g.BirthDistrict, &g.BirthRegion, &g.PhotoURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &resp, nil
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuery, err)
	}
	resp.Gef = &g

	staffRows, err := r.storage.Query(ctx,
		`SELECT nom, prenom, COALESCE(profile, '') FROM personnel WHERE n_gef = $1 ORDER BY nom, prenom`, number)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuery, err)
	}
	resp.Employees, err = pgx.CollectRows(staffRows, func(row pgx.CollectableRow) (dto.StaffDetailDTO, error) {
		var s dto.StaffDetailDTO
		err := row.Scan(&s.LastName, &s.FirstName, &s.Profile)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuery, err)
	}

	phoneRows, err := r.storage.Query(ctx,
		`SELECT COALESCE(type_tel, ''), num FROM telephones WHERE n_gef = $1 ORDER BY type_tel, id`, number)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuery, err)
	}
	resp.Telephones, err = pgx.CollectRows(phoneRows, func(row pgx.CollectableRow) (dto.PhoneDetailDTO, error) {
		var p dto.PhoneDetailDTO
		err := row.Scan(&p.Type, &p.Number)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuery, err)
	}

	eqRows, err := r.storage.Query(ctx,
		`SELECT t.nom_type, COALESCE(ge.quantite, 1)
		 FROM gef_equipement ge JOIN type_equipement t ON t.id_type = ge.id_type
		 WHERE ge.n_gef = $1 ORDER BY t.nom_type`, number)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuery, err)
	}
	resp.Equipments, err = pgx.CollectRows(eqRows, func(row pgx.CollectableRow) (dto.EquipmentDetailDTO, error) {
		var e dto.EquipmentDetailDTO
		err := row.Scan(&e.Name, &e.Quantity)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuery, err)
	}

	apRows, err := r.storage.Query(ctx,
		`SELECT a.nom, COALESCE(to_char(ga.date_obtention, 'YYYY-MM-DD'), '')
		 FROM gef_agrements ga JOIN agrements a ON a.id = ga.agrement_id
		 WHERE ga.gef_n = $1 ORDER BY a.nom`, number)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuery, err)
	}
	resp.Agrements, err = pgx.CollectRows(apRows, func(row pgx.CollectableRow) (dto.ApprovalDetailDTO, error) {
		var a dto.ApprovalDetailDTO
		err := row.Scan(&a.Name, &a.Date)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrQuery, err)
	}

	return &resp, nil
}
