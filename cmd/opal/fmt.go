package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"opal/internal/diagfmt"
	"opal/internal/driver"
	"opal/internal/format"
	"opal/internal/project"
	"opal/internal/source"
	"opal/internal/ui"
)

const noOpalTomlMessage = "no opal.toml found\nplease pass the paths explicitly, e.g.:\n  opal fmt src"

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [path ...]",
	Short: "Format opal source files",
	Long:  `Rewrites .opal files into canonical form. Without paths the project manifest decides what to format.`,
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted without rewriting them")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Int("jobs", 0, "number of files formatted in parallel (0 = all CPUs)")
	fmtCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
	fmtCmd.Flags().Bool("no-cache", false, "ignore the canonical-form cache")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}
	verbose, err := cmd.Root().PersistentFlags().GetBool("verbose")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		manifest, ok, err := project.LoadManifest(".")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s", noOpalTomlMessage)
		}
		paths = manifest.SourceDirs()
	}

	files, err := driver.CollectSourceFiles(cmd.Context(), paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("fmt: no source files found")
	}

	opts := driver.FormatOptions{
		Check:  check,
		Stdout: writeToStdout,
		Jobs:   jobs,
	}
	if verbose {
		logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
		logger.SetLevel(log.DebugLevel)
		opts.Logger = logger
	}
	if !noCache {
		// Без кеша просто медленнее, поэтому ошибку открытия не поднимаем.
		if cache, cacheErr := driver.OpenFormatCache("opal"); cacheErr == nil {
			opts.Cache = cache
		}
	}

	// Отладочный лог и TUI не делят один терминал.
	useTUI := shouldUseTUI(mode) && !quiet && !verbose && !writeToStdout && outputFormat == "text"
	var formatResults []driver.FormatResult
	if useTUI {
		formatResults, err = runFmtWithProgress(cmd.Context(), files, opts, check)
	} else {
		formatResults, err = driver.FormatFiles(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	var hasErrors bool
	var hasChanges bool

	switch outputFormat {
	case "text":
		if writeToStdout {
			renderFmtStdout(formatResults, &hasErrors)
			if hasErrors {
				return fmt.Errorf("fmt: failed to format some files")
			}
			return nil
		}
		renderFmtText(formatResults, check, quiet || useTUI, &hasErrors, &hasChanges)
	case "json":
		if err := renderFmtJSON(formatResults, check); err != nil {
			return err
		}
		for _, res := range formatResults {
			hasErrors = hasErrors || res.Err != nil
			hasChanges = hasChanges || res.Changed
		}
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	if hasErrors {
		return fmt.Errorf("fmt: failed to format some files")
	}
	if check && hasChanges {
		return fmt.Errorf("fmt: formatting changes required")
	}
	return nil
}

func runFmtWithProgress(ctx context.Context, files []string, opts driver.FormatOptions, check bool) ([]driver.FormatResult, error) {
	events := make(chan driver.Event, len(files))
	opts.Events = events

	var results []driver.FormatResult
	var runErr error
	go func() {
		results, runErr = driver.FormatFiles(ctx, files, opts)
		close(events)
	}()

	title := "formatting"
	if check {
		title = "checking formatting"
	}
	model := ui.NewFormatProgress(title, files, events)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		// Сломанный терминал не должен прятать результат прогона,
		// просто дочитываем события без отрисовки.
		for range events {
		}
	}
	return results, runErr
}

// renderFileError печатает синтаксические ошибки с позициями и выдержкой
// исходника; всё прочее (I/O и т.п.) — одной строкой.
func renderFileError(w io.Writer, path string, err error, colored bool) {
	var parseErr *format.ParseError
	if errors.As(err, &parseErr) {
		fs := source.NewFileSet()
		fs.AddVirtual(parseErr.Path, []byte(parseErr.Src))
		opts := diagfmt.DefaultPrettyOpts()
		opts.Color = colored
		if diagfmt.Pretty(w, fs, parseErr.Diagnostics, opts) == nil {
			return
		}
	}
	fmt.Fprintf(w, "fmt: %s: %v\n", path, err)
}

func renderFmtStdout(results []driver.FormatResult, hasErrors *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			renderFileError(os.Stderr, res.Path, res.Err, isTerminal(os.Stderr))
			continue
		}

		_, _ = os.Stdout.Write(res.Formatted)
	}
}

func renderFmtText(results []driver.FormatResult, check, quiet bool, hasErrors, hasChanges *bool) {
	for _, res := range results {
		if res.Err != nil {
			*hasErrors = true
			renderFileError(os.Stderr, res.Path, res.Err, isTerminal(os.Stderr))
			continue
		}

		if res.Changed {
			*hasChanges = true
			if quiet {
				continue
			}
			if check {
				fmt.Fprintln(os.Stdout, res.Path)
			} else {
				fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
			}
		}
	}
}

func renderFmtJSON(results []driver.FormatResult, check bool) error {
	type jsonResult struct {
		Path     string `json:"path"`
		Changed  bool   `json:"changed"`
		Error    string `json:"error,omitempty"`
		CheckRun bool   `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
