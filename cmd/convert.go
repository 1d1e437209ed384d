// =============================================================================
// ORAE Bridge - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, the test mode of the bridge. It
// runs the same pipeline as serve on JSON files from disk and writes record
// sets to files instead of publishing them.
//
// COMMAND USAGE:
//   orae-bridge convert <file|dir> [--xlsx]
//
// OUTPUT:
//   output_save_path set:   RecordSet_{yyyyMMddHHmmss}_test.json
//   output_save_path empty: output_{name} beside the input
//   --xlsx:                 an XLSX report next to each JSON output
//
// A directory is converted concurrently, bounded by max_concurrency, and a
// summary log is written for the run.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/orae-rims-bridge/internal/converter"
	"github.com/ginjaninja78/orae-rims-bridge/internal/observability"
	"github.com/ginjaninja78/orae-rims-bridge/internal/report"
	"github.com/ginjaninja78/orae-rims-bridge/internal/rims"
	"github.com/ginjaninja78/orae-rims-bridge/internal/validation"
	"github.com/ginjaninja78/orae-rims-bridge/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// xlsxReport also writes an XLSX report per converted file.
var xlsxReport bool

// =============================================================================
// CONVERT COMMAND DEFINITION
// =============================================================================

var convertCmd = &cobra.Command{
	Use:   "convert <file|dir>",
	Short: "Convert retail event JSON files to RIMS record sets (test mode)",
	Long: `The convert command reads ORAE retail events from a file, or from every
*.json file in a directory, and writes the resulting RIMS record sets as JSON.

Rejected events are reported with their validation errors. Nothing is
published.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(
		&xlsxReport,
		"xlsx",
		false,
		"Also write an XLSX report of each record set",
	)
}

// fileJob bundles what every file conversion needs.
type fileJob struct {
	conv   *converter.Converter
	files  *utils.FileManager
	layout *rims.Layout
	xlsx   bool
}

// fileResult is the outcome of converting one file.
type fileResult struct {
	inputFile  string
	outputFile string
	result     converter.Result
	err        error
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runConvert(ctx context.Context, target string) error {
	cfg, err := loadConfig(false)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	layout, err := loadLayout(cfg, logger)
	if err != nil {
		return err
	}

	job := fileJob{
		conv: converter.New(
			converter.WithLogger(observability.NewPrintfAdapter(logger)),
			converter.WithLayout(layout),
			converter.WithInputValidation(!cfg.DisableORAEValidation),
		),
		files:  utils.NewFileManager("", cfg.OutputSavePath, nil),
		layout: layout,
		xlsx:   xlsxReport,
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", target, err)
	}

	if !info.IsDir() {
		res := job.convertFile(ctx, target, false)
		printResult(res)
		if res.err != nil {
			if len(res.result.Violations) > 0 {
				logDir := cfg.OutputSavePath
				if logDir == "" {
					logDir = filepath.Dir(target)
				}
				if path, err := validation.WriteErrorLog(res.result.Violations, logDir, target); err == nil {
					fmt.Printf("Errors have been logged to %s\n", path)
				}
			}
			return res.err
		}
		return nil
	}

	summaryDir := cfg.OutputSavePath
	if summaryDir == "" {
		summaryDir = target
	}
	return runBatch(ctx, job, target, summaryDir, cfg.MaxConcurrency)
}

// runBatch converts every input file in dir with at most limit conversions
// in flight.
func runBatch(ctx context.Context, job fileJob, dir, summaryDir string, limit int) error {
	summary := utils.ProcessingSummary{RunID: utils.NewRunID(), StartTime: time.Now()}

	inputs, err := utils.DiscoverInputFiles(dir, "")
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Println("No JSON files found.")
		return nil
	}
	fmt.Printf("=== ORAE Bridge run %s: %d file(s) ===\n", summary.RunID, len(inputs))

	if limit <= 0 {
		limit = 1
	}
	sem := make(chan struct{}, limit)
	results := make(chan fileResult, len(inputs))
	var wg sync.WaitGroup

	for _, input := range inputs {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results <- job.convertFile(ctx, path, true)
		}(input)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	summary.TotalFiles = len(inputs)
	for res := range results {
		printResult(res)
		summary.OrderRecords += res.result.Stats.OrderRecords
		summary.TenderRecords += res.result.Stats.TenderRecords
		summary.ValidationErrors += len(res.result.Violations)

		switch {
		case res.err == nil:
			summary.SuccessfulFiles++
			summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
				InputFile:     res.inputFile,
				OutputFile:    res.outputFile,
				OrderRecords:  res.result.Stats.OrderRecords,
				TenderRecords: res.result.Stats.TenderRecords,
				ProcessTime:   res.result.Stats.ProcessingTime,
			})
		default:
			if res.result.Disposition == converter.Rejected {
				summary.RejectedFiles++
			} else {
				summary.FailedFiles++
			}
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    res.inputFile,
				ErrorMessage: res.err.Error(),
				Violations:   res.result.Violations,
			})
		}
	}
	summary.EndTime = time.Now()

	fmt.Println("\n=== Processing Complete ===")
	fmt.Printf("Total files:     %d\n", summary.TotalFiles)
	fmt.Printf("Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Printf("Rejected:        %d\n", summary.RejectedFiles)
	fmt.Printf("Failed:          %d\n", summary.FailedFiles)
	fmt.Printf("Time elapsed:    %s\n", summary.EndTime.Sub(summary.StartTime))

	path, err := utils.WriteSummaryLog(summary, summaryDir)
	if err != nil {
		return err
	}
	fmt.Printf("Summary written to %s\n", path)

	if summary.SuccessfulFiles < summary.TotalFiles {
		return fmt.Errorf("%d of %d file(s) were not converted", summary.TotalFiles-summary.SuccessfulFiles, summary.TotalFiles)
	}
	return nil
}

// convertFile converts one file and writes its outputs.
func (j fileJob) convertFile(ctx context.Context, path string, batch bool) fileResult {
	res := fileResult{inputFile: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.result.Disposition = converter.Retry
		res.err = fmt.Errorf("failed to read input: %w", err)
		return res
	}

	res.result = j.conv.Convert(data)
	if res.result.Disposition != converter.Converted {
		res.err = res.result.Error
		return res
	}

	out, err := j.files.WriteFile(ctx, j.files.TestOutputPath(path, batch), res.result.Output)
	if err != nil {
		res.result.Disposition = converter.Retry
		res.err = fmt.Errorf("failed to write output: %w", err)
		return res
	}
	res.outputFile = out

	if j.xlsx {
		xlsxPath := strings.TrimSuffix(out, filepath.Ext(out)) + ".xlsx"
		if err := report.WriteRecordSet(xlsxPath, res.result.RecordSet, j.layout, nil); err != nil {
			res.result.Disposition = converter.Retry
			res.err = fmt.Errorf("failed to write xlsx report: %w", err)
			return res
		}
	}
	return res
}

func printResult(res fileResult) {
	name := filepath.Base(res.inputFile)
	if res.err == nil {
		fmt.Printf("  ✓ %s -> %s (%d order, %d tender)\n", name, res.outputFile,
			res.result.Stats.OrderRecords, res.result.Stats.TenderRecords)
		return
	}
	fmt.Printf("  ✗ %s: %v\n", name, res.err)
	for _, v := range res.result.Violations {
		fmt.Printf("      - %s\n", v)
	}
}
