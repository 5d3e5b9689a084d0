package sources

import (
	"context"
	"os"
	"sync"

	"github.com/agentstation/tallysheet/pkg/errors"
	"github.com/agentstation/tallysheet/pkg/logging"
	"github.com/agentstation/tallysheet/pkg/records"
	"github.com/agentstation/tallysheet/pkg/types"
)

// Locate returns the file to read for a source. An explicit path must
// exist; otherwise the source's directory is searched by token.
func Locate(src Source) (string, error) {
	if src.Path != "" {
		info, err := os.Stat(src.Path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", &errors.MissingInputError{Source: string(src.ID), Err: err}
			}
			return "", errors.WrapIO("stat", src.Path, err)
		}
		if info.IsDir() {
			return "", &errors.ValidationError{Field: string(src.ID), Value: src.Path, Message: "path is a directory"}
		}
		return src.Path, nil
	}

	path, err := Discover(src.Dir, src.Token, src.Exclude...)
	if err != nil {
		var missing *errors.MissingInputError
		if errors.As(err, &missing) {
			missing.Source = string(src.ID)
		}
		return "", err
	}
	return path, nil
}

// Load locates, reads and validates a single source. A missing optional
// source yields a nil table and no error.
func Load(ctx context.Context, src Source) (*Table, error) {
	logger := logging.FromContext(logging.WithSource(ctx, string(src.ID)))

	path, err := Locate(src)
	if err != nil {
		if !src.Required && errors.IsMissingInput(err) {
			logger.Info().Msg("Optional input not found, skipping")
			return nil, nil
		}
		return nil, err
	}

	reader, err := ReaderFor(path, src.Sheet)
	if err != nil {
		return nil, err
	}

	table, err := reader.Read(ctx, path)
	if err != nil {
		return nil, err
	}
	table.Source = src.ID

	if missing := records.MissingColumns(table.Header, src.Columns...); len(missing) > 0 {
		return nil, &errors.MissingColumnsError{File: path, Columns: missing}
	}

	logger.Info().
		Str("path", path).
		Int("rows", table.Len()).
		Msg("Loaded input")
	return table, nil
}

// loadResult carries one source's outcome back from its goroutine.
type loadResult struct {
	id    types.SourceID
	table *Table
	err   error
}

// LoadAll loads every source concurrently. Tables are keyed by source ID;
// optional sources that were not found are absent from the map. Errors
// from all failed sources are joined in the order the sources were given.
func LoadAll(ctx context.Context, srcs []Source) (map[types.SourceID]*Table, error) {
	var wg sync.WaitGroup
	resultChan := make(chan loadResult, len(srcs))

	for _, src := range srcs {
		wg.Add(1)
		go func(s Source) {
			defer wg.Done()
			table, err := Load(ctx, s)
			resultChan <- loadResult{id: s.ID, table: table, err: err}
		}(src)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	tables := make(map[types.SourceID]*Table, len(srcs))
	failures := make(map[types.SourceID]error)
	for result := range resultChan {
		if result.err != nil {
			failures[result.id] = result.err
			continue
		}
		if result.table != nil {
			tables[result.id] = result.table
		}
	}

	if len(failures) > 0 {
		var errs []error
		for _, src := range srcs {
			if err, ok := failures[src.ID]; ok {
				errs = append(errs, err)
			}
		}
		if len(errs) == 1 {
			return nil, errs[0]
		}
		return nil, errors.Join(errs...)
	}
	return tables, nil
}
