// Package download сохраняет полученные артефакты на диск под фиксированным именем.
package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Saver — действие «сохранить файл», которое контроллер запускает после успешного сжатия.
type Saver interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// DirSaver пишет файлы в заданный каталог.
type DirSaver struct {
	Dir string
}

// NewDirSaver создаёт сохранялку в каталог dir ("" — текущий каталог).
func NewDirSaver(dir string) *DirSaver {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	return &DirSaver{Dir: dir}
}

// Save атомарно записывает data в Dir/name и возвращает итоговый путь.
// Существующий файл с тем же именем перезаписывается.
func (s *DirSaver) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name = filepath.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid file name %q", name)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	// Пишем во временный файл рядом и переименовываем, чтобы не оставлять полузаписанный результат.
	tmp, err := os.CreateTemp(s.Dir, "."+name+".*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	dst := filepath.Join(s.Dir, name)
	if err = os.Rename(tmpPath, dst); err != nil {
		return "", fmt.Errorf("rename into place: %w", err)
	}
	_ = os.Chmod(dst, 0o644)

	return dst, nil
}
