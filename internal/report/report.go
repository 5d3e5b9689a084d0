// Package report writes the reconciled workbook.
//
// The workbook has two sheets, "Match Results" and "Estimated Ratings",
// with every cell stored as a string. An existing report at the target
// path is renamed aside to the next free versioned name before the new
// one is written, and the new file only appears once it is complete.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agentstation/tallysheet/pkg/constants"
	"github.com/agentstation/tallysheet/pkg/errors"
	"github.com/agentstation/tallysheet/pkg/logging"
	"github.com/agentstation/tallysheet/pkg/records"
)

// Writer writes reports to a fixed path.
type Writer struct {
	path    string
	archive bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithArchive controls whether an existing report is kept as a versioned
// copy. When disabled the existing file is replaced.
func WithArchive(enabled bool) Option {
	return func(w *Writer) {
		w.archive = enabled
	}
}

// NewWriter creates a writer for path.
func NewWriter(path string, opts ...Option) *Writer {
	if path == "" {
		path = constants.DefaultOutputFile
	}
	w := &Writer{path: path, archive: true}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Path returns the report path.
func (w *Writer) Path() string {
	return w.path
}

// Outcome describes a completed write.
type Outcome struct {
	Path       string `json:"path" yaml:"path"`
	ArchivedTo string `json:"archived_to,omitempty" yaml:"archived_to,omitempty"`
	MatchRows  int    `json:"match_rows" yaml:"match_rows"`
	RatingRows int    `json:"rating_rows" yaml:"rating_rows"`
}

// Write builds the workbook and stores it at the writer's path.
func (w *Writer) Write(ctx context.Context, matches []records.MatchRecord, ratings []records.EstimatedRatingRecord) (*Outcome, error) {
	logger := logging.FromContext(logging.WithPath(ctx, w.path))
	rows := len(matches) + len(ratings)
	outcome := &Outcome{Path: w.path, MatchRows: len(matches), RatingRows: len(ratings)}

	logger.Info().
		Int("match_rows", outcome.MatchRows).
		Int("rating_rows", outcome.RatingRows).
		Msg("Writing report")

	if err := ctx.Err(); err != nil {
		return nil, errors.WrapOutput(w.path, rows, err)
	}

	f, err := Build(matches, ratings)
	if err != nil {
		return nil, errors.WrapOutput(w.path, rows, err)
	}
	defer func() { _ = f.Close() }()

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return nil, errors.WrapOutput(w.path, rows, err)
	}

	if w.archive {
		archived, err := Archive(w.path)
		if err != nil {
			return nil, errors.WrapOutput(w.path, rows, err)
		}
		if archived != "" {
			outcome.ArchivedTo = archived
			logger.Info().Str("archived_to", archived).Msg("Archived previous report")
		}
	}

	if err := writeAtomic(f, w.path); err != nil {
		logger.Error().Err(err).Int("rows", rows).Msg("Report write failed")
		return nil, errors.WrapOutput(w.path, rows, err)
	}

	logger.Info().Msg("Report written")
	return outcome, nil
}

// writeAtomic writes the workbook to a temporary file next to path and
// renames it into place. The temporary file is removed on failure.
func writeAtomic(f *excelize.File, path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = f.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// Archive renames an existing file at path to the first free name of the
// form base_vN.ext, N starting at 1. It returns the new name, or "" when
// there was nothing to archive.
func Archive(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.WrapIO("stat", path, err)
	}

	target, err := NextVersion(path)
	if err != nil {
		return "", err
	}
	if err := os.Rename(path, target); err != nil {
		return "", errors.WrapIO("rename", path, err)
	}
	return target, nil
}

// NextVersion returns the first base_vN.ext next to path that does not exist.
func NextVersion(path string) (string, error) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_v%d%s", base, n, ext)
		_, err := os.Stat(candidate)
		if os.IsNotExist(err) {
			return candidate, nil
		}
		if err != nil {
			return "", errors.WrapIO("stat", candidate, err)
		}
	}
}
