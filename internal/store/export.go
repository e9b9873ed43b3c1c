package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// CompressedSuffix selects zstd compression for export and import files.
const CompressedSuffix = ".zst"

// ErrNotArray is returned when an import document is not a JSON array.
var ErrNotArray = errors.New("import document is not a JSON array")

// DefaultExportName returns the export file name for the given day.
func DefaultExportName(now time.Time) string {
	return fmt.Sprintf("wxk_logs_%s.json", now.Format("2006-01-02"))
}

// record is the on-disk shape of an entry. Timestamps stay strings so that
// a malformed one is reported with its position instead of failing the
// whole decode.
type record struct {
	ID               string   `json:"id"`
	TS               string   `json:"ts"`
	Profile          string   `json:"profile"`
	Overload         int      `json:"overload"`
	Codes            []string `json:"err"`
	Note             string   `json:"note"`
	Actions          Actions  `json:"actions"`
	BoundaryTemplate string   `json:"boundaryTpl"`
	BoundaryNote     string   `json:"boundaryNote"`
}

// EncodeEntries writes entries as an indented JSON array.
func EncodeEntries(w io.Writer, entries []Entry) error {
	records := make([]record, len(entries))
	for i, e := range entries {
		codes := e.Codes
		if codes == nil {
			codes = []string{}
		}
		records[i] = record{
			ID:               e.ID,
			TS:               formatTS(e.Timestamp),
			Profile:          e.Profile,
			Overload:         e.Overload,
			Codes:            codes,
			Note:             e.Note,
			Actions:          e.Actions,
			BoundaryTemplate: e.BoundaryTemplate,
			BoundaryNote:     e.BoundaryNote,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	return nil
}

// DecodeEntries reads a JSON array of entries. Entries without an ID get a
// fresh one; entries without a timestamp get the current time.
func DecodeEntries(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	var records []record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("decode import: %w", err)
	}

	now := time.Now().UTC()
	entries := make([]Entry, len(records))
	for i, rec := range records {
		e := Entry{
			ID:               rec.ID,
			Profile:          rec.Profile,
			Overload:         rec.Overload,
			Codes:            rec.Codes,
			Note:             rec.Note,
			Actions:          rec.Actions,
			BoundaryTemplate: rec.BoundaryTemplate,
			BoundaryNote:     rec.BoundaryNote,
			Timestamp:        now,
		}
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if rec.TS != "" {
			ts, err := parseTS(rec.TS)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			e.Timestamp = ts
		}
		entries[i] = e
	}
	return entries, nil
}

// ExportFile writes every entry in repo to path, newest first. A path
// ending in CompressedSuffix is zstd-compressed. Returns the number of
// entries written.
func ExportFile(ctx context.Context, repo EntryRepo, path string) (int, error) {
	entries, err := repo.List(ctx, QueryOpts{})
	if err != nil {
		return 0, err
	}

	err = writeAtomic(path, func(w io.Writer) error {
		if !isCompressed(path) {
			return EncodeEntries(w, entries)
		}
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		if err := EncodeEntries(zw, entries); err != nil {
			zw.Close()
			return err
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("finish zstd stream: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// ImportFile replaces every entry in repo with the entries in path. A path
// ending in CompressedSuffix is read as zstd. Returns the number of entries
// imported. Nothing is changed if the file cannot be decoded.
func ImportFile(ctx context.Context, repo EntryRepo, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open import: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if isCompressed(path) {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return 0, fmt.Errorf("zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	entries, err := DecodeEntries(r)
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", filepath.Base(path), err)
	}
	if err := repo.ReplaceAll(ctx, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// writeAtomic writes to a temp file next to path and renames it into place
// once write succeeds. On failure path is left untouched.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if err = write(f); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename export: %w", err)
	}
	return nil
}

func isCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), CompressedSuffix)
}
