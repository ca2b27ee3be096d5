package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	uploadcfg "ogef/config"
	"ogef/internal/dto"
	"ogef/internal/repositories"
	"ogef/pkg/constants"
	apperrors "ogef/pkg/errors"
	"ogef/pkg/filestorage"
	"ogef/pkg/types"
)

type OfficeServiceInterface interface {
	Create(ctx context.Context, in dto.OfficeInput) types.WriteOutcome
	Update(ctx context.Context, number int64, in dto.OfficeInput) types.WriteOutcome
	Delete(ctx context.Context, number int64) types.WriteOutcome
	GetForEdit(ctx context.Context, number int64) (*dto.OfficeEditDTO, error)
}

type OfficeService struct {
	repo        repositories.OfficeRepositoryInterface
	txManager   repositories.TxManagerInterface
	fileStorage filestorage.FileStorageInterface
	base        *BaseService
	logger      *zap.Logger
}

func NewOfficeService(
	repo repositories.OfficeRepositoryInterface,
	txManager repositories.TxManagerInterface,
	fileStorage filestorage.FileStorageInterface,
	base *BaseService,
	logger *zap.Logger,
) OfficeServiceInterface {
	return &OfficeService{
		repo:        repo,
		txManager:   txManager,
		fileStorage: fileStorage,
		base:        base,
		logger:      logger,
	}
}

// Create: если номер уже занят, OutcomeDuplicate и ничего не записано.
// Бюро и все дочерние строки пишутся в одной транзакции.
func (s *OfficeService) Create(ctx context.Context, in dto.OfficeInput) types.WriteOutcome {
	s.logWarnDroppedDates(in)
	if in.Situation == "" {
		in.Situation = dto.DefaultSituation
	}

	newPhoto, err := s.savePhoto(in.Photo)
	if err != nil {
		return invalidOutcome(in.Number, err)
	}
	in.PhotoFilename = newPhoto

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		exists, err := s.repo.ExistsByNumber(ctx, tx, in.Number)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("GEF %d: %w", in.Number, apperrors.ErrDuplicateKey)
		}
		if err := s.repo.Create(ctx, tx, in.ToEntity()); err != nil {
			return err
		}
		return s.repo.ReplaceChildren(ctx, tx, in.Number, in.Children())
	})
	if err != nil {
		s.removePhoto(newPhoto)
		if errors.Is(err, apperrors.ErrDuplicateKey) {
			s.logger.Warn("GEF уже существует", zap.Int64("numero", in.Number))
			return types.WriteOutcome{Kind: types.OutcomeDuplicate, OfficeNumber: in.Number, Err: err}
		}
		s.logger.Error("Ошибка при создании GEF", zap.Int64("numero", in.Number), zap.Error(err))
		return persistenceOutcome(in.Number, err)
	}

	s.base.CacheDel(ctx, repositories.CacheKeyOfficeSummary)
	s.logger.Info("GEF создан", zap.Int64("numero", in.Number))
	return types.WriteOutcome{Kind: types.OutcomeCreated, OfficeNumber: in.Number}
}

// Update перезаписывает скаляры и целиком заменяет дочерние коллекции.
func (s *OfficeService) Update(ctx context.Context, number int64, in dto.OfficeInput) types.WriteOutcome {
	s.logWarnDroppedDates(in)
	in.Number = number

	newPhoto, err := s.savePhoto(in.Photo)
	if err != nil {
		return invalidOutcome(number, err)
	}
	in.PhotoFilename = newPhoto

	var oldPhoto string
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		current, err := s.repo.FindByNumber(ctx, tx, number)
		if err != nil {
			return err
		}
		oldPhoto = current.PhotoFilename.String
		if err := s.repo.Update(ctx, tx, in.ToEntity()); err != nil {
			return err
		}
		return s.repo.ReplaceChildren(ctx, tx, number, in.Children())
	})
	if err != nil {
		s.removePhoto(newPhoto)
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("GEF для обновления не найден", zap.Int64("numero", number))
			return types.WriteOutcome{Kind: types.OutcomeNotFound, OfficeNumber: number, Err: err}
		}
		s.logger.Error("Ошибка при обновлении GEF", zap.Int64("numero", number), zap.Error(err))
		return persistenceOutcome(number, err)
	}

	if newPhoto != "" && oldPhoto != "" && oldPhoto != newPhoto {
		s.removePhoto(oldPhoto)
	}
	s.base.CacheDel(ctx, repositories.CacheKeyOfficeSummary)
	s.logger.Info("GEF обновлён", zap.Int64("numero", number))
	return types.WriteOutcome{Kind: types.OutcomeUpdated, OfficeNumber: number}
}

// Delete: отсутствующий GEF даёт предупреждение, а не ошибку.
func (s *OfficeService) Delete(ctx context.Context, number int64) types.WriteOutcome {
	var photo string
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		deleted, err := s.repo.Delete(ctx, tx, number)
		photo = deleted.String
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn("GEF для удаления не найден", zap.Int64("numero", number))
			return types.WriteOutcome{Kind: types.OutcomeNotFound, OfficeNumber: number, Err: err}
		}
		s.logger.Error("Ошибка при удалении GEF", zap.Int64("numero", number), zap.Error(err))
		return persistenceOutcome(number, err)
	}

	s.removePhoto(photo)
	s.base.CacheDel(ctx, repositories.CacheKeyOfficeSummary)
	s.logger.Info("GEF удалён", zap.Int64("numero", number))
	return types.WriteOutcome{Kind: types.OutcomeDeleted, OfficeNumber: number}
}

func (s *OfficeService) GetForEdit(ctx context.Context, number int64) (*dto.OfficeEditDTO, error) {
	edit, err := s.repo.FindForEdit(ctx, number)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("Ошибка чтения GEF для редактирования", zap.Int64("numero", number), zap.Error(err))
		}
		return nil, err
	}
	return edit, nil
}

func (s *OfficeService) savePhoto(photo *dto.PhotoUpload) (string, error) {
	if photo == nil || photo.File == nil {
		return "", nil
	}
	cfg := uploadcfg.UploadContexts[constants.UploadContextOfficePhoto]
	checked, err := filestorage.CheckUpload(photo.File, cfg)
	if err != nil {
		return "", err
	}
	path, err := s.fileStorage.Save(checked, photo.Filename, cfg.PathPrefix)
	if err != nil {
		return "", fmt.Errorf("не удалось сохранить фото: %w", err)
	}
	return path, nil
}

func (s *OfficeService) removePhoto(path string) {
	if path == "" {
		return
	}
	if err := s.fileStorage.Delete(path); err != nil {
		s.logger.Warn("Не удалось удалить файл фото", zap.String("path", path), zap.Error(err))
	}
}

func (s *OfficeService) logWarnDroppedDates(in dto.OfficeInput) {
	if len(in.DroppedDates) > 0 {
		s.logger.Warn("Некорректные даты заменены на NULL",
			zap.Int64("numero", in.Number), zap.Strings("fields", in.DroppedDates))
	}
}

func invalidOutcome(number int64, err error) types.WriteOutcome {
	return types.WriteOutcome{Kind: types.OutcomeInvalid, OfficeNumber: number, Err: err}
}

func persistenceOutcome(number int64, err error) types.WriteOutcome {
	return types.WriteOutcome{
		Kind:         types.OutcomePersistenceError,
		OfficeNumber: number,
		Err:          fmt.Errorf("%w: %v", apperrors.ErrPersistence, err),
	}
}
