// pkg/filestorage/local_filestorage.go

package filestorage

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	uploadcfg "ogef/config"
)

type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	Delete(filePath string) error
}

var ErrFileRejected = fmt.Errorf("файл отклонён")

type LocalFileStorage struct {
	basePath string
}

func NewLocalFileStorage(basePath string) (FileStorageInterface, error) {
	if _, err := os.Stat(basePath); os.IsNotExist(err) {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию: %w", err)
		}
	}
	return &LocalFileStorage{basePath: basePath}, nil
}

// Save пишет файл в basePath/prefix/YYYY/MM/DD/ под уникальным именем
// и возвращает путь относительно basePath.
func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalFileName))
	uniqueFileName := fmt.Sprintf("%s-%s%s", time.Now().Format("2006-01-02"), uuid.New().String(), ext)

	datePath := time.Now().Format("2006/01/02")
	fullDirPath := filepath.Join(s.basePath, prefix, datePath)

	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(fullDirPath, uniqueFileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(prefix, datePath, uniqueFileName)), nil
}

func (s *LocalFileStorage) Delete(filePath string) error {
	relativePath := strings.TrimPrefix(filePath, "/uploads/")
	if relativePath == "" || strings.Contains(relativePath, "..") {
		return nil
	}
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(relativePath))

	// Если файла и так нет, считаем операцию успешной.
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(fullPath)
}

// CheckUpload читает файл целиком, проверяет размер и MIME по содержимому
// и возвращает Reader для последующего Save.
func CheckUpload(src io.Reader, cfg uploadcfg.UploadConfig) (io.Reader, error) {
	limit := cfg.MaxSizeMB << 20
	data, err := io.ReadAll(io.LimitReader(src, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: размер больше %d МБ", ErrFileRejected, cfg.MaxSizeMB)
	}

	mime := http.DetectContentType(data)
	for _, allowed := range cfg.AllowedMimeTypes {
		if mime == allowed {
			return bytes.NewReader(data), nil
		}
	}
	return nil, fmt.Errorf("%w: тип %s не разрешён", ErrFileRejected, mime)
}
