package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ogef/internal/dto"
	"ogef/internal/entities"
	apperrors "ogef/pkg/errors"
	"ogef/pkg/utils"
)

const (
	officeTable  = "gef"
	officeFields = "id, numero, n_p, email, adresse, statut_bureau, commune_c, situation, nim, nif, " +
		"observations, date_obt, date_naiss, lieu_naiss_wc, lieu_naiss_cc, photo_filename"

	staffTable           = "personnel"
	phoneTable           = "telephones"
	officeEquipmentTable = "gef_equipement"
	officeApprovalTable  = "gef_agrements"
)

type OfficeRepositoryInterface interface {
	ExistsByNumber(ctx context.Context, tx pgx.Tx, number int64) (bool, error)
	FindByNumber(ctx context.Context, tx pgx.Tx, number int64) (*entities.Office, error)
	FindForEdit(ctx context.Context, number int64) (*dto.OfficeEditDTO, error)
	Create(ctx context.Context, tx pgx.Tx, office entities.Office) error
	Update(ctx context.Context, tx pgx.Tx, office entities.Office) error
	Delete(ctx context.Context, tx pgx.Tx, number int64) (null.String, error)
	ReplaceChildren(ctx context.Context, tx pgx.Tx, number int64, children entities.OfficeChildren) error
}

type officeRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOfficeRepository(storage *pgxpool.Pool, logger *zap.Logger) OfficeRepositoryInterface {
	return &officeRepository{storage: storage, logger: logger}
}

func (r *officeRepository) getQuerier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

func scanOffice(row pgx.Row) (*entities.Office, error) {
	var o entities.Office
	err := row.Scan(
		&o.ID, &o.Number, &o.LegalName, &o.Email, &o.Address, &o.Status, &o.DistrictCode,
		&o.Situation, &o.NIM, &o.NIF, &o.Observations, &o.DateObtained, &o.BirthDate,
		&o.BirthRegionCode, &o.BirthDistrictCode, &o.PhotoFilename,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("ошибка сканирования gef: %w", err)
	}
	return &o, nil
}

func (r *officeRepository) ExistsByNumber(ctx context.Context, tx pgx.Tx, number int64) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM gef WHERE numero = $1)"
	if err := r.getQuerier(tx).QueryRow(ctx, query, number).Scan(&exists); err != nil {
		return false, fmt.Errorf("ошибка проверки существования gef: %w", err)
	}
	return exists, nil
}

// FindByNumber внутри транзакции блокирует строку до конца транзакции.
func (r *officeRepository) FindByNumber(ctx context.Context, tx pgx.Tx, number int64) (*entities.Office, error) {
	b := sq.Select(officeFields).From(officeTable).Where(sq.Eq{"numero": number})
	if tx != nil {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки SQL для FindByNumber: %w", err)
	}
	return scanOffice(r.getQuerier(tx).QueryRow(ctx, query, args...))
}

func (r *officeRepository) Create(ctx context.Context, tx pgx.Tx, o entities.Office) error {
	query, args, err := sq.Insert(officeTable).
		Columns("numero", "n_p", "email", "adresse", "statut_bureau", "commune_c", "situation",
			"nim", "nif", "observations", "date_obt", "date_naiss", "lieu_naiss_wc", "lieu_naiss_cc",
			"photo_filename").
		Values(o.Number, o.LegalName, o.Email, o.Address, o.Status, o.DistrictCode, o.Situation,
			o.NIM, o.NIF, o.Observations, o.DateObtained, o.BirthDate, o.BirthRegionCode,
			o.BirthDistrictCode, o.PhotoFilename).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки SQL для Create gef: %w", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("GEF %d: %w", o.Number, apperrors.ErrDuplicateKey)
		}
		return fmt.Errorf("ошибка создания gef: %w", err)
	}
	return nil
}

// Update перезаписывает все скалярные поля. Фото меняется, только если передано новое.
func (r *officeRepository) Update(ctx context.Context, tx pgx.Tx, o entities.Office) error {
	query, args, err := sq.Update(officeTable).
		Set("n_p", o.LegalName).
		Set("email", o.Email).
		Set("adresse", o.Address).
		Set("statut_bureau", o.Status).
		Set("commune_c", o.DistrictCode).
		Set("situation", o.Situation).
		Set("nim", o.NIM).
		Set("nif", o.NIF).
		Set("observations", o.Observations).
		Set("date_obt", o.DateObtained).
		Set("date_naiss", o.BirthDate).
		Set("lieu_naiss_wc", o.BirthRegionCode).
		Set("lieu_naiss_cc", o.BirthDistrictCode).
		Set("photo_filename", sq.Expr("COALESCE(?, photo_filename)", o.PhotoFilename)).
		Where(sq.Eq{"numero": o.Number}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки SQL для Update gef: %w", err)
	}

	result, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("ошибка обновления gef: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет бюро; персонал, телефоны и связи удаляет ON DELETE CASCADE.
// Возвращает имя файла фото удалённого бюро.
func (r *officeRepository) Delete(ctx context.Context, tx pgx.Tx, number int64) (null.String, error) {
	var photo null.String
	err := tx.QueryRow(ctx, "DELETE FROM gef WHERE numero = $1 RETURNING photo_filename", number).Scan(&photo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return photo, apperrors.ErrNotFound
		}
		return photo, fmt.Errorf("ошибка удаления gef: %w", err)
	}
	return photo, nil
}

// ReplaceChildren удаляет все дочерние строки бюро и вставляет переданные.
// Пустая коллекция означает «очистить».
func (r *officeRepository) ReplaceChildren(ctx context.Context, tx pgx.Tx, number int64, ch entities.OfficeChildren) error {
	deletes := []struct {
		table  string
		column string
	}{
		{staffTable, "n_gef"},
		{phoneTable, "n_gef"},
		{officeEquipmentTable, "n_gef"},
		{officeApprovalTable, "gef_n"},
	}
	for _, d := range deletes {
		query, args, err := sq.Delete(d.table).Where(sq.Eq{d.column: number}).PlaceholderFormat(sq.Dollar).ToSql()
		if err != nil {
			return fmt.Errorf("ошибка сборки SQL для очистки %s: %w", d.table, err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("ошибка очистки %s: %w", d.table, err)
		}
	}

	if len(ch.Staff) > 0 {
		b := sq.Insert(staffTable).Columns("nom", "prenom", "profile", "date_debut_travail", "n_gef")
		for _, s := range ch.Staff {
			b = b.Values(s.LastName, s.FirstName, s.Profile, s.StartDate, number)
		}
		if err := r.execInsert(ctx, tx, staffTable, b); err != nil {
			return err
		}
	}

	if len(ch.Phones) > 0 {
		b := sq.Insert(phoneTable).Columns("type_tel", "num", "n_gef")
		for _, p := range ch.Phones {
			b = b.Values(p.Type, p.Number, number)
		}
		if err := r.execInsert(ctx, tx, phoneTable, b); err != nil {
			return err
		}
	}

	if len(ch.Equipment) > 0 {
		b := sq.Insert(officeEquipmentTable).Columns("n_gef", "id_type", "quantite")
		for _, e := range ch.Equipment {
			b = b.Values(number, e.EquipmentTypeID, e.Quantity)
		}
		if err := r.execInsert(ctx, tx, officeEquipmentTable, b); err != nil {
			return err
		}
	}

	if len(ch.Approvals) > 0 {
		b := sq.Insert(officeApprovalTable).Columns("gef_n", "agrement_id", "date_obtention")
		for _, a := range ch.Approvals {
			b = b.Values(number, a.ApprovalTypeID, a.DateObtained)
		}
		if err := r.execInsert(ctx, tx, officeApprovalTable, b); err != nil {
			return err
		}
	}

	return nil
}

func (r *officeRepository) execInsert(ctx context.Context, tx pgx.Tx, table string, b sq.InsertBuilder) error {
	query, args, err := b.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return fmt.Errorf("ошибка сборки SQL для вставки в %s: %w", table, err)
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка вставки в %s: %w", table, err)
	}
	return nil
}

// FindForEdit собирает бюро и текущие дочерние коллекции для формы редактирования.
func (r *officeRepository) FindForEdit(ctx context.Context, number int64) (*dto.OfficeEditDTO, error) {
	office, err := r.FindByNumber(ctx, nil, number)
	if err != nil {
		return nil, err
	}

	result := &dto.OfficeEditDTO{
		Office:              *office,
		EquipmentQuantities: make(map[int64]int64),
		ApprovalDates:       make(map[int64]string),
	}

	if office.DistrictCode.Valid {
		err = r.storage.QueryRow(ctx, "SELECT code_wilaya FROM commune WHERE code_commu = $1", office.DistrictCode.Int64).
			Scan(&result.RegionCode)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ошибка чтения вилайи коммуны: %w", err)
		}
	}

	staffRows, err := r.storage.Query(ctx,
		"SELECT id_personnel, nom, prenom, date_debut_travail, profile, n_gef FROM personnel WHERE n_gef = $1 ORDER BY id_personnel", number)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения personnel: %w", err)
	}
	result.Staff, err = pgx.CollectRows(staffRows, func(row pgx.CollectableRow) (entities.Staff, error) {
		var s entities.Staff
		err := row.Scan(&s.ID, &s.LastName, &s.FirstName, &s.StartDate, &s.Profile, &s.OfficeNumber)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования personnel: %w", err)
	}

	phoneRows, err := r.storage.Query(ctx,
		"SELECT id, type_tel, num, n_gef FROM telephones WHERE n_gef = $1 ORDER BY id", number)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения telephones: %w", err)
	}
	result.Phones, err = pgx.CollectRows(phoneRows, func(row pgx.CollectableRow) (entities.Phone, error) {
		var p entities.Phone
		err := row.Scan(&p.ID, &p.Type, &p.Number, &p.OfficeNumber)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования telephones: %w", err)
	}

	eqRows, err := r.storage.Query(ctx, "SELECT id_type, COALESCE(quantite, 1) FROM gef_equipement WHERE n_gef = $1", number)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения gef_equipement: %w", err)
	}
	defer eqRows.Close()
	for eqRows.Next() {
		var typeID, quantity int64
		if err := eqRows.Scan(&typeID, &quantity); err != nil {
			return nil, fmt.Errorf("ошибка сканирования gef_equipement: %w", err)
		}
		result.EquipmentQuantities[typeID] = quantity
	}
	if err := eqRows.Err(); err != nil {
		return nil, err
	}

	apRows, err := r.storage.Query(ctx, "SELECT agrement_id, date_obtention FROM gef_agrements WHERE gef_n = $1", number)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения gef_agrements: %w", err)
	}
	defer apRows.Close()
	for apRows.Next() {
		var typeID int64
		var obtained null.Time
		if err := apRows.Scan(&typeID, &obtained); err != nil {
			return nil, fmt.Errorf("ошибка сканирования gef_agrements: %w", err)
		}
		result.ApprovalDates[typeID] = utils.FormatDate(obtained)
	}
	if err := apRows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
