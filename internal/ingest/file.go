package ingest

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/AngelCh415/sdr-funnel/internal/models"
)

// FileSource reads a pipeline output directory (index.json + <date>.json).
type FileSource struct{ dir string }

func NewFileSource(dir string) *FileSource { return &FileSource{dir: dir} }

func (s *FileSource) open(name string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *FileSource) Dates(ctx context.Context) ([]string, error) {
	f, err := s.open(indexFile)
	if errors.Is(err, ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeIndex(f)
}

func (s *FileSource) FetchDay(ctx context.Context, date string) (*models.DailyRecord, error) {
	f, err := s.open(dayFile(date))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeRecord(f, date)
}
