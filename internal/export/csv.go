package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// write stores header and rows in dir/name atomically and returns the
// final path.
func (e *Exporter) write(name string, header []string, rows [][]string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(e.dir, name)

	tmp, err := os.CreateTemp(e.dir, name+".tmp.*")
	if err != nil {
		return "", fmt.Errorf("create temporary export file: %w", err)
	}
	tmpPath := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write header to %s: %w", name, err)
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write rows to %s: %w", name, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close temporary export file: %w", err)
	}

	// CreateTemp uses 0600; exports are ordinary user files
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("set export file mode: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("replace export file %s: %w", path, err)
	}

	e.logger.Debug().Str("path", path).Int("rows", len(rows)).Msg("Wrote export file")
	return path, nil
}
