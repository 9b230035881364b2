package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"zoia/internal/diag"
	"zoia/internal/pipeline"
	"zoia/internal/source"
	"zoia/internal/trace"
)

// FileExt is the extension of markup files picked up in directory mode.
const FileExt = ".zoia"

// ListFiles возвращает отсортированный список всех *.zoia файлов в директории
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// скрытые каталоги (.git и т.п.) пропускаем, корень - нет
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, FileExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// CheckDir проверяет все *.zoia файлы в директории параллельно.
// Results are ordered by path; a file that fails to load gets an IO diagnostic
// instead of aborting the run.
func CheckDir(ctx context.Context, dir string, opts *CheckOptions) (*source.FileSet, []*CheckResult, error) {
	if opts == nil {
		opts = &CheckOptions{}
	}
	files, err := ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	dirSpan := trace.Begin(tracer, trace.Start{Scope: trace.ScopePass, Name: "check_dir", Path: dir, Parent: trace.Parent(ctx)})
	defer dirSpan.End(strconv.Itoa(len(files)) + " files")
	ctx = trace.WithParent(ctx, dirSpan)

	pipeline.EmitQueued(opts.Sink, files)

	// Предзагружаем все файлы в общий FileSet: он не потокобезопасен на запись
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		start := time.Now()
		fileID, loadErr := fileSet.Load(path)
		if loadErr != nil {
			loadErrors[path] = loadErr
			// пустой виртуальный файл, чтобы у IO-диагностики был путь
			fileIDs[path] = fileSet.AddVirtual(path, nil)
			pipeline.Emit(opts.Sink, path, pipeline.StageLoad, pipeline.StatusError, loadErr, time.Since(start))
			continue
		}
		fileIDs[path] = fileID
		pipeline.Emit(opts.Sink, path, pipeline.StageLoad, pipeline.StatusDone, nil, time.Since(start))
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]*CheckResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			file := fileSet.Get(fileIDs[path])
			if loadErr, hadError := loadErrors[path]; hadError {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: file.ID},
					"failed to load file: "+loadErr.Error()))
				results[i] = &CheckResult{
					Path:   path,
					FileID: file.ID,
					File:   file,
					Bag:    bag,
				}
				return nil
			}
			results[i] = checkLoaded(gctx, path, file, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, compact(results), err
	}
	pipeline.Emit(opts.Sink, "", pipeline.StageCheck, pipeline.StatusDone, nil, 0)
	return fileSet, results, nil
}

// compact drops slots of files that never ran because the run was cancelled.
func compact(results []*CheckResult) []*CheckResult {
	out := results[:0]
	for _, r := range results {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// MergeBags собирает диагностики всех результатов в один отсортированный bag.
func MergeBags(results []*CheckResult) *diag.Bag {
	total := 0
	for _, r := range results {
		total += r.Bag.Len()
	}
	out := diag.NewBag(total)
	for _, r := range results {
		out.Merge(r.Bag)
	}
	out.Dedup()
	out.Sort()
	return out
}
