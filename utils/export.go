package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"quick-translate/translator"

	"github.com/google/uuid"
)

type ExportData struct {
	ExportID    string `json:"export_id"`
	Timestamp   string `json:"timestamp"`
	RequestType string `json:"request_type"`
	Endpoint    string `json:"endpoint"`
	From        string `json:"from"`
	To          string `json:"to"`
	Data        any    `json:"data"`
}

// TranslationRecord is the exported and tabulated form of one batch item.
type TranslationRecord struct {
	Index       int    `json:"index"`
	Source      string `json:"source"`
	Translation string `json:"translation,omitzero"`
	Error       string `json:"error,omitzero"`
}

func RecordsFromResults(texts []string, results []translator.Result) []TranslationRecord {
	records := make([]TranslationRecord, len(results))
	for i, r := range results {
		records[i] = TranslationRecord{
			Index:       r.Index,
			Translation: r.Text,
		}
		if r.Index < len(texts) {
			records[i].Source = texts[r.Index]
		}
		if r.Err != nil {
			records[i].Error = r.Err.Error()
		}
	}
	return records
}

func sanitizeString(s string) string {
	if !utf8.ValidString(s) {
		return strings.ToValidUTF8(s, "?")
	}
	return s
}

func sanitizeRecords(records []TranslationRecord) []TranslationRecord {
	out := make([]TranslationRecord, len(records))
	for i, r := range records {
		r.Source = sanitizeString(r.Source)
		r.Translation = sanitizeString(r.Translation)
		r.Error = sanitizeString(r.Error)
		out[i] = r
	}
	return out
}

// ExportToJSON writes records under dir and returns the file path. The file
// name is derived from requestType and the current timestamp.
func ExportToJSON(dir string, records []TranslationRecord, requestType, endpoint, from, to string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	exportID := uuid.NewString()
	filename := fmt.Sprintf("%s_%d_%s.json", requestType, GetCurrentTimestamp(), exportID[:8])
	path := filepath.Join(dir, filename)

	exportData := ExportData{
		ExportID:    exportID,
		Timestamp:   time.Now().Format(time.RFC3339),
		RequestType: requestType,
		Endpoint:    endpoint,
		From:        from,
		To:          to,
		Data:        sanitizeRecords(records),
	}

	// Keep non-ASCII text readable in the output file.
	var buf strings.Builder
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(exportData); err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(path, []byte(strings.TrimSpace(buf.String())), 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}
	return path, nil
}

// ParseExportFlag strips a trailing "--o json" from interactive input and
// reports whether it was present.
func ParseExportFlag(input string) (string, bool) {
	parts := strings.Fields(input)
	for i, part := range parts {
		if part == "--o" && i+1 < len(parts) && parts[i+1] == "json" {
			cleaned := strings.Join(append(parts[:i], parts[i+2:]...), " ")
			return strings.TrimSpace(cleaned), true
		}
	}
	return input, false
}
