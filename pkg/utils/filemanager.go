// =============================================================================
// ORAE Bridge - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the bridge, including:
//   - Saving received events and produced record sets
//   - Input discovery for batch conversion
//   - Archival of saved files to a GCS bucket
//   - Summary logs for batch runs
//
// FILE NAMING:
//   Input_{yyyyMMddHHmmss}_{messageId}.json       received events
//   RecordSet_{yyyyMMddHHmmss}_{messageId}.json   published record sets
//   RecordSet_{yyyyMMddHHmmss}_test.json          test mode output
//   output_{name}                                 test mode output beside input
//
//   A missing message id is replaced with a random UUID.
//
// =============================================================================

package utils

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

const timestampFormat = "20060102150405"

// Archiver copies a saved local file to long-term storage.
type Archiver interface {
	Archive(ctx context.Context, localPath string) error
}

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager handles file operations for the bridge.
type FileManager struct {
	// InputDir is where received events are saved. Empty disables saving.
	InputDir string

	// OutputDir is where record sets are saved. Empty disables saving in
	// serve mode and selects output_{name} naming in test mode.
	OutputDir string

	// Archiver, when set, receives a copy of every saved file.
	Archiver Archiver

	now   func() time.Time
	newID func() string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(inputDir, outputDir string, archiver Archiver) *FileManager {
	return &FileManager{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Archiver:  archiver,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// =============================================================================
// SAVING
// =============================================================================

// SaveInput saves a received event.
//
// RETURNS:
//   - The written path, or "" when InputDir is empty.
//   - An error if writing or archival fails.
func (fm *FileManager) SaveInput(ctx context.Context, messageID string, data []byte) (string, error) {
	if fm.InputDir == "" {
		return "", nil
	}
	name := fmt.Sprintf("Input_%s_%s.json", fm.now().Format(timestampFormat), fm.idOrRandom(messageID))
	return fm.write(ctx, filepath.Join(fm.InputDir, name), data)
}

// SaveOutput saves a record set produced for a received message.
//
// RETURNS:
//   - The written path, or "" when OutputDir is empty.
//   - An error if writing or archival fails.
func (fm *FileManager) SaveOutput(ctx context.Context, messageID string, data []byte) (string, error) {
	if fm.OutputDir == "" {
		return "", nil
	}
	name := fmt.Sprintf("RecordSet_%s_%s.json", fm.now().Format(timestampFormat), fm.idOrRandom(messageID))
	return fm.write(ctx, filepath.Join(fm.OutputDir, name), data)
}

// TestOutputPath returns where test mode writes the record set for
// inputPath. In batch mode the input's base name is added to the
// timestamped name so files converted within the same second stay distinct.
func (fm *FileManager) TestOutputPath(inputPath string, batch bool) string {
	if fm.OutputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), "output_"+filepath.Base(inputPath))
	}
	ts := fm.now().Format(timestampFormat)
	if batch {
		stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		return filepath.Join(fm.OutputDir, fmt.Sprintf("RecordSet_%s_%s_test.json", ts, stem))
	}
	return filepath.Join(fm.OutputDir, fmt.Sprintf("RecordSet_%s_test.json", ts))
}

// WriteFile writes data to path, creating its directory, and archives it.
func (fm *FileManager) WriteFile(ctx context.Context, path string, data []byte) (string, error) {
	return fm.write(ctx, path, data)
}

func (fm *FileManager) write(ctx context.Context, path string, data []byte) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if fm.Archiver != nil {
		if err := fm.Archiver.Archive(ctx, path); err != nil {
			return path, fmt.Errorf("failed to archive %s: %w", filepath.Base(path), err)
		}
	}
	return path, nil
}

func (fm *FileManager) idOrRandom(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return fm.newID()
	}
	return strings.NewReplacer("/", "_", "\\", "_").Replace(id)
}

// =============================================================================
// FILE DISCOVERY
// =============================================================================

// DiscoverInputFiles lists the regular files in dir matching pattern, sorted.
//
// PARAMETERS:
//   - dir: The directory to scan.
//   - pattern: A glob pattern. If empty, defaults to "*.json".
func DiscoverInputFiles(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.json"
	}

	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	var result []string
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if !info.IsDir() && !strings.HasPrefix(filepath.Base(file), "output_") {
			result = append(result, file)
		}
	}
	sort.Strings(result)
	return result, nil
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// =============================================================================
// PROCESSING SUMMARY
// =============================================================================

// NewRunID returns a sortable identifier for a batch run.
func NewRunID() string {
	return ulid.Make().String()
}

// ProcessingSummary contains summary information about a batch run.
type ProcessingSummary struct {
	RunID            string
	StartTime        time.Time
	EndTime          time.Time
	TotalFiles       int
	SuccessfulFiles  int
	RejectedFiles    int
	FailedFiles      int
	OrderRecords     int
	TenderRecords    int
	ValidationErrors int
	ProcessedFiles   []ProcessedFileInfo
	FailedFilesList  []FailedFileInfo
}

// ProcessedFileInfo contains information about a converted file.
type ProcessedFileInfo struct {
	InputFile     string
	OutputFile    string
	OrderRecords  int
	TenderRecords int
	ProcessTime   time.Duration
}

// FailedFileInfo contains information about a rejected or failed file.
type FailedFileInfo struct {
	InputFile    string
	ErrorMessage string
	Violations   []string
}

// WriteSummaryLog writes a processing summary to a log file.
//
// PARAMETERS:
//   - summary: The processing summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary ProcessingSummary, outputDir string) (string, error) {
	if summary.RunID == "" {
		summary.RunID = NewRunID()
	}
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("processing_summary_%s.txt", summary.RunID))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	rule := strings.Repeat("=", 80) + "\n"
	thin := strings.Repeat("-", 80) + "\n"

	fmt.Fprintf(writer, "ORAE Bridge - Processing Summary\n%s\n", rule)
	fmt.Fprintf(writer, "Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n\n",
		summary.RunID,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime).String())
	fmt.Fprintf(writer, "Statistics:\n"+
		"  Total Files:        %d\n"+
		"  Successful:         %d\n"+
		"  Rejected:           %d\n"+
		"  Failed:             %d\n"+
		"  Order Records:      %d\n"+
		"  Tender Records:     %d\n"+
		"  Validation Errors:  %d\n\n",
		summary.TotalFiles,
		summary.SuccessfulFiles,
		summary.RejectedFiles,
		summary.FailedFiles,
		summary.OrderRecords,
		summary.TenderRecords,
		summary.ValidationErrors)

	if len(summary.ProcessedFiles) > 0 {
		fmt.Fprintf(writer, "Successful Files:\n%s", thin)
		for _, pf := range summary.ProcessedFiles {
			fmt.Fprintf(writer, "  Input:        %s\n", pf.InputFile)
			fmt.Fprintf(writer, "  Output:       %s\n", pf.OutputFile)
			fmt.Fprintf(writer, "  Records:      %d order, %d tender\n", pf.OrderRecords, pf.TenderRecords)
			fmt.Fprintf(writer, "  Process Time: %s\n\n", pf.ProcessTime.String())
		}
	}

	if len(summary.FailedFilesList) > 0 {
		fmt.Fprintf(writer, "Failed Files:\n%s", thin)
		for _, ff := range summary.FailedFilesList {
			fmt.Fprintf(writer, "  File:  %s\n", ff.InputFile)
			fmt.Fprintf(writer, "  Error: %s\n", ff.ErrorMessage)
			for _, v := range ff.Violations {
				fmt.Fprintf(writer, "    - %s\n", v)
			}
			writer.WriteString("\n")
		}
	}

	writer.WriteString(rule + "End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}
	return summaryPath, nil
}
