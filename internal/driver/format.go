package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"opal/internal/format"
	"opal/internal/project"
)

// FormatOptions configures code formatting.
type FormatOptions struct {
	// Check: файлы не трогаем, Changed показывает расхождение с каноном.
	Check bool
	// Stdout: отформатированный текст возвращается в результатах,
	// диск не изменяется.
	Stdout bool
	// Jobs ограничивает параллелизм; <=0 означает GOMAXPROCS.
	Jobs int
	// Cache пропускает файлы, чьё содержимое уже признано каноничным.
	Cache *FormatCache
	// Events, если задан, получает статус каждого файла по ходу работы.
	Events chan<- Event
	// Logger пишет отладочную трассу прогона (попадания кеша, тайминги).
	Logger *log.Logger
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
}

// ErrUnstable reports that formatting the formatter's own output changed it
// again. The file is left untouched when this happens.
var ErrUnstable = errors.New("formatting is not stable")

// FormatPaths formats provided files or directories (recursively collecting
// .opal files). See FormatFiles for the option semantics.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	files, err := CollectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("format: no source files found")
	}
	return FormatFiles(ctx, files, opts)
}

// FormatFiles форматирует заранее собранный список файлов параллельно.
// Результаты идут в порядке files независимо от порядка завершения горутин.
func FormatFiles(ctx context.Context, files []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]FormatResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			opts.emit(Event{Path: path, Status: StatusFormatting})
			started := time.Now()
			results[i] = formatOneFile(path, opts)
			status := StatusUnchanged
			switch {
			case results[i].Err != nil:
				status = StatusError
			case results[i].Changed:
				status = StatusDone
			}
			if opts.Logger != nil {
				opts.Logger.Debug("formatted",
					"path", path, "status", status.String(), "took", time.Since(started))
			}
			opts.emit(Event{Path: path, Status: status})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (opts FormatOptions) emit(ev Event) {
	if opts.Events != nil {
		opts.Events <- ev
	}
}

func formatOneFile(path string, opts FormatOptions) FormatResult {
	result := FormatResult{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Err = err
		return result
	}

	contentDigest := project.HashBytes(data)
	if opts.Cache.Known(contentDigest) {
		// Содержимое уже признавалось каноничным, парсить не нужно.
		if opts.Logger != nil {
			opts.Logger.Debug("cache hit", "path", path)
		}
		if opts.Stdout {
			result.Formatted = data
		}
		return result
	}

	formatted, err := format.Source(path, data)
	if err != nil {
		result.Err = err
		return result
	}

	// Повторный прогон обязан быть неподвижной точкой; расхождение значит
	// баг принтера, и файл лучше не трогать.
	again, err := format.Source(path, []byte(formatted))
	if err != nil {
		result.Err = fmt.Errorf("%s: %w: reparse failed: %v", path, ErrUnstable, err)
		return result
	}
	if again != formatted {
		result.Err = fmt.Errorf("%s: %w", path, ErrUnstable)
		return result
	}

	out := []byte(formatted)
	result.Changed = !bytes.Equal(data, out)

	if opts.Check {
		if !result.Changed {
			opts.Cache.Remember(contentDigest)
		}
		return result
	}

	if opts.Stdout {
		result.Formatted = out
		return result
	}

	if result.Changed {
		mode := os.FileMode(0o644)
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode()
		}
		if err := os.WriteFile(path, out, mode.Perm()); err != nil {
			result.Err = err
			result.Changed = false
			return result
		}
	}
	opts.Cache.Remember(project.HashBytes(out))
	return result
}

// CollectSourceFiles раскрывает пути в отсортированный список *.opal файлов.
// Явно переданный файл берётся только с правильным расширением.
func CollectSourceFiles(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if filepath.Ext(path) == ".opal" {
					addFile(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		if filepath.Ext(p) == ".opal" {
			addFile(p)
		}
	}

	sort.Strings(files)
	return files, nil
}
