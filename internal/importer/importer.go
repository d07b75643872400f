package importer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/claude/liftlog/internal/models"
)

// ExportFile is one history export document: a batch of finalized
// workout records, e.g. exported from a previous tracker.
type ExportFile struct {
	Records []models.HistoryRecord `json:"records"`
}

// ReadExportFile parses one export document. A bare JSON array of records
// is accepted too, since several trackers export that shape.
func ReadExportFile(path string) (*ExportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading export file: %w", err)
	}

	var export ExportFile
	if err := json.Unmarshal(data, &export); err == nil && export.Records != nil {
		return &export, nil
	}

	var records []models.HistoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing export file %s: %w", filepath.Base(path), err)
	}
	return &ExportFile{Records: records}, nil
}

// Importer walks a directory of export files and sends their records to
// the server, skipping files the state DB already knows.
type Importer struct {
	client *Client
	state  *StateDB
	log    *slog.Logger
	dryRun bool
}

// New creates an Importer. With dryRun set, files are parsed and counted
// but nothing is sent or marked.
func New(client *Client, state *StateDB, dryRun bool, log *slog.Logger) *Importer {
	return &Importer{client: client, state: state, log: log, dryRun: dryRun}
}

// Result summarizes one import run.
type Result struct {
	FilesSeen    int
	FilesSkipped int
	FilesSent    int
	Records      int
}

// Run imports every *.json export file under dir, in name order.
func (imp *Importer) Run(dir string) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading export dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	result := &Result{}
	for _, name := range files {
		path := filepath.Join(dir, name)
		result.FilesSeen++

		sent, count, err := imp.importFile(path, name)
		if err != nil {
			return result, fmt.Errorf("importing %s: %w", name, err)
		}
		if sent {
			result.FilesSent++
			result.Records += count
		} else {
			result.FilesSkipped++
		}
	}
	return result, nil
}

func (imp *Importer) importFile(path, relPath string) (sent bool, records int, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, 0, err
	}
	hash, err := HashFile(path)
	if err != nil {
		return false, 0, fmt.Errorf("hashing: %w", err)
	}

	done, err := imp.state.IsImported(relPath, info.Size(), hash)
	if err != nil {
		return false, 0, fmt.Errorf("checking state: %w", err)
	}
	if done {
		imp.log.Info("already imported, skipping", "file", relPath)
		return false, 0, nil
	}

	export, err := ReadExportFile(path)
	if err != nil {
		return false, 0, err
	}
	if len(export.Records) == 0 {
		imp.log.Warn("export file has no records", "file", relPath)
	}

	if imp.dryRun {
		imp.log.Info("dry-run: would send", "file", relPath, "records", len(export.Records))
		return true, len(export.Records), nil
	}

	if err := imp.client.SendRecords(export.Records); err != nil {
		return false, 0, err
	}
	if err := imp.state.MarkImported(relPath, info.Size(), hash, len(export.Records)); err != nil {
		return false, 0, fmt.Errorf("marking state: %w", err)
	}

	imp.log.Info("imported", "file", relPath, "records", len(export.Records))
	return true, len(export.Records), nil
}
