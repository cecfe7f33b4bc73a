package formatter

import (
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/ytcull/internal/models"
	tu "github.com/desertthunder/ytcull/internal/testing"
)

func testExport() *models.PlaylistExport {
	return &models.PlaylistExport{
		Playlist: models.Playlist{
			ID:          "pl123",
			Title:       "Watch Later Overflow",
			Description: "Videos to triage",
			ItemCount:   2,
			Privacy:     "private",
		},
		Items: []models.PlaylistItem{
			{
				ID:       "item1",
				VideoID:  "vidA",
				Title:    "First Video",
				Channel:  "Channel A",
				Link:     "https://www.youtube.com/watch?v=vidA",
				Position: 0,
			},
			{
				ID:       "item2",
				VideoID:  "vidB",
				Title:    "Second Video",
				Channel:  "Channel B",
				Link:     "https://www.youtube.com/watch?v=vidB",
				Position: 1,
			},
		},
	}
}

func testRecords(t *testing.T, n int) []*models.AuditRecord {
	t.Helper()
	removedAt := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	records := make([]*models.AuditRecord, n)
	for i := range records {
		item := models.PlaylistItem{
			VideoID: "vidA",
			Title:   "First Video",
			Channel: "Channel A",
		}
		playlist := models.Playlist{ID: "pl123", Title: "Watch Later Overflow"}
		records[i] = models.NewAuditRecord(i+1, item, playlist, removedAt)
	}
	return records
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(testExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Position,VideoID,Title,Channel,Link") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "vidA") {
			t.Errorf("CSV missing first video id")
		}
		if !strings.Contains(output, "Second Video") {
			t.Errorf("CSV missing second title")
		}
		if !strings.Contains(output, "https://www.youtube.com/watch?v=vidB") {
			t.Errorf("CSV missing watch link")
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(testExport())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Watch Later Overflow") {
			t.Errorf("Markdown missing title")
		}
		if !strings.Contains(output, "**Description**: Videos to triage") {
			t.Errorf("Markdown missing description")
		}
		if !strings.Contains(output, "**Items**: 2") {
			t.Errorf("Markdown missing item count")
		}
		if !strings.Contains(output, "**Visibility**: private") {
			t.Errorf("Markdown missing visibility")
		}
		if !strings.Contains(output, "## Items") {
			t.Errorf("Markdown missing items section")
		}
		if !strings.Contains(output, "1. [First Video](https://www.youtube.com/watch?v=vidA) - Channel A") {
			t.Errorf("Markdown missing first item, got: %s", output)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(testExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Playlist: Watch Later Overflow") {
			t.Errorf("text missing playlist name")
		}
		if !strings.Contains(output, "Items: 2") {
			t.Errorf("text missing item count")
		}
		if !strings.Contains(output, "1. Channel A - First Video") {
			t.Errorf("text missing first item, got: %s", output)
		}
	})
}

func TestAuditToCSV(t *testing.T) {
	t.Run("Row Count Matches Records", func(t *testing.T) {
		records := testRecords(t, 3)

		data, err := AuditToCSV(records)
		if err != nil {
			t.Fatalf("AuditToCSV failed: %v", err)
		}

		rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse generated CSV: %v", err)
		}

		if len(rows) != len(records)+1 {
			t.Errorf("expected %d rows including header, got %d", len(records)+1, len(rows))
		}
	})

	t.Run("Column Schema", func(t *testing.T) {
		data, err := AuditToCSV(testRecords(t, 1))
		if err != nil {
			t.Fatalf("AuditToCSV failed: %v", err)
		}

		rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse generated CSV: %v", err)
		}

		want := []string{"VideoID", "Title", "Link", "Channel", "PlaylistID", "PlaylistName", "RemovedAt"}
		header := rows[0]
		if len(header) != len(want) {
			t.Fatalf("expected %d columns, got %d", len(want), len(header))
		}
		for i, col := range want {
			if header[i] != col {
				t.Errorf("column %d: expected %s, got %s", i, col, header[i])
			}
		}

		row := rows[1]
		if row[0] != "vidA" || row[4] != "pl123" || row[5] != "Watch Later Overflow" {
			t.Errorf("unexpected row values: %v", row)
		}
		if _, err := time.Parse(time.RFC3339, row[6]); err != nil {
			t.Errorf("RemovedAt should be RFC3339, got %s", row[6])
		}
	})

	t.Run("Empty Records", func(t *testing.T) {
		data, err := AuditToCSV(nil)
		if err != nil {
			t.Fatalf("AuditToCSV failed: %v", err)
		}

		output := strings.TrimSpace(string(data))
		if output != "VideoID,Title,Link,Channel,PlaylistID,PlaylistName,RemovedAt" {
			t.Errorf("expected header only, got: %s", output)
		}
	})
}

func TestFileExports(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		dir := t.TempDir()
		base := filepath.Join(dir, "export")

		result, err := WriteCSVExport(testExport(), base)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		if result.ItemsFile != base+"_items.csv" {
			t.Errorf("unexpected items file: %s", result.ItemsFile)
		}
		tu.AssertFileExists(t, result.ItemsFile)
		tu.AssertFileExists(t, result.MetadataFile)

		metadata := tu.MustReadFile(t, result.MetadataFile)
		if !strings.Contains(metadata, "Watch Later Overflow") {
			t.Errorf("metadata missing playlist title")
		}
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "pl123")

		mdFile, err := WriteMarkdownExport(testExport(), dir)
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		if !strings.Contains(tu.MustReadFile(t, mdFile), "# Watch Later Overflow") {
			t.Errorf("markdown file missing title")
		}
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "items.txt")

		written, err := WriteTextExport(testExport(), path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}
		if written != path {
			t.Errorf("expected %s, got %s", path, written)
		}
		tu.AssertFileExists(t, path)
	})

	t.Run("WriteAuditExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "audit.csv")

		written, err := WriteAuditExport(testRecords(t, 2), path)
		if err != nil {
			t.Fatalf("WriteAuditExport failed: %v", err)
		}

		rows, err := csv.NewReader(strings.NewReader(tu.MustReadFile(t, written))).ReadAll()
		if err != nil {
			t.Fatalf("failed to parse audit CSV: %v", err)
		}
		if len(rows) != 3 {
			t.Errorf("expected header plus 2 rows, got %d", len(rows))
		}
	})
}
