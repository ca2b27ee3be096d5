package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ogef/internal/repositories"
)

// SeedCoreDictionaries наполняет типы оборудования и агременты.
// Повторный запуск ничего не дублирует.
func SeedCoreDictionaries(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("▶️  Запуск наполнения базовых справочников...")

	err := repositories.NewTxManager(db).RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := seedEquipmentTypes(ctx, tx); err != nil {
			return err
		}
		return seedApprovalTypes(ctx, tx)
	})
	if err != nil {
		return err
	}

	log.Println("✅ Наполнение базовых справочников завершено!")
	return nil
}

// SeedGeography добавляет выборку вилай и коммун.
func SeedGeography(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("▶️  Запуск наполнения вилай и коммун...")

	err := repositories.NewTxManager(db).RunInTransaction(ctx, func(tx pgx.Tx) error {
		for _, r := range regionsData {
			if err := upsertRegion(ctx, tx, r.Code, r.Name); err != nil {
				return err
			}
		}
		for _, d := range districtsData {
			if err := upsertDistrict(ctx, tx, d.Code, d.Name, d.RegionCode); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("✅ Вилайи: %d, коммуны: %d", len(regionsData), len(districtsData))
	return nil
}

func seedEquipmentTypes(ctx context.Context, tx pgx.Tx) error {
	log.Println("  - Наполнение таблицы 'type_equipement'...")
	query := `INSERT INTO type_equipement (nom_type) VALUES ($1) ON CONFLICT (nom_type) DO NOTHING`
	for _, name := range equipmentTypesData {
		if _, err := tx.Exec(ctx, query, name); err != nil {
			return err
		}
	}
	return nil
}

func seedApprovalTypes(ctx context.Context, tx pgx.Tx) error {
	log.Println("  - Наполнение таблицы 'agrements'...")
	query := `INSERT INTO agrements (nom) VALUES ($1) ON CONFLICT (nom) DO NOTHING`
	for _, name := range approvalTypesData {
		if _, err := tx.Exec(ctx, query, name); err != nil {
			return err
		}
	}
	return nil
}

func upsertRegion(ctx context.Context, tx pgx.Tx, code int64, name string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO wilaya (code, nom_wilaya) VALUES ($1, $2) ON CONFLICT (code) DO NOTHING`,
		code, name)
	return err
}

func upsertDistrict(ctx context.Context, tx pgx.Tx, code int64, name string, regionCode int64) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO commune (code_commu, nom_commun, code_wilaya) VALUES ($1, $2, $3) ON CONFLICT (code_commu) DO NOTHING`,
		code, name, regionCode)
	return err
}

// FlushReferenceCache сбрасывает все ключи приложения после изменения справочников.
func FlushReferenceCache(ctx context.Context, cache repositories.CacheRepositoryInterface) (int64, error) {
	return cache.DelByPrefix(ctx, repositories.CacheKeyPrefix)
}
