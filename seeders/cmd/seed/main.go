package main

import (
	"context"
	"flag"
	"log"

	"github.com/go-redis/redis/v8"

	db "ogef/internal/infrastructure/bd"
	"ogef/internal/repositories"
	"ogef/pkg/config"
	"ogef/pkg/database/postgresql"
	"ogef/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runCore := flag.Bool("core", false, "Наполнить типы оборудования и агременты")
	runGeo := flag.Bool("geo", false, "Наполнить выборку вилай и коммун")
	xlsxPath := flag.String("xlsx", "", "Импортировать вилайи и коммуны из XLSX (code_wilaya | nom_wilaya | code_commune | nom_commune)")
	runAll := flag.Bool("all", false, "Запустить все сидеры (эквивалентно -core -geo)")
	migrate := flag.Bool("migrate", false, "Применить миграции перед наполнением")

	flag.Parse()

	if !*runCore && !*runGeo && *xlsxPath == "" && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Примеры использования:")
		log.Println("  go run ./seeders/cmd/seed -core")
		log.Println("  go run ./seeders/cmd/seed -all -migrate")
		log.Println("  go run ./seeders/cmd/seed -xlsx communes.xlsx")
		log.Println("======================================================")
		return
	}

	ctx := context.Background()
	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	if *migrate {
		if err := db.Migrate(ctx, cfg.Postgres.DSN); err != nil {
			log.Fatalf("❌ Ошибка применения миграций: %v", err)
		}
	}

	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	log.Println("======================================================")

	if *runAll || *runCore {
		if err := seeders.SeedCoreDictionaries(ctx, dbPool); err != nil {
			log.Fatalf("❌ Ошибка наполнения справочников: %v", err)
		}
		log.Println("======================================================")
	}

	if *runAll || *runGeo {
		if err := seeders.SeedGeography(ctx, dbPool); err != nil {
			log.Fatalf("❌ Ошибка наполнения вилай и коммун: %v", err)
		}
		log.Println("======================================================")
	}

	if *xlsxPath != "" {
		n, err := seeders.ImportCommunes(ctx, dbPool, *xlsxPath)
		if err != nil {
			log.Fatalf("❌ Ошибка импорта коммун: %v", err)
		}
		log.Printf("✅ Импортировано коммун: %d", n)
		log.Println("======================================================")
	}

	if cfg.Redis.Address != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		n, err := seeders.FlushReferenceCache(ctx, repositories.NewRedisCacheRepository(client))
		if err != nil {
			log.Printf("⚠️  Не удалось сбросить кэш справочников: %v", err)
		} else {
			log.Printf("🧹 Сброшено ключей кэша: %d", n)
		}
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
