package driver

import (
	"context"
	"errors"
	"time"

	"zoia/internal/ast"
	"zoia/internal/check"
	"zoia/internal/cst"
	"zoia/internal/diag"
	"zoia/internal/observ"
	"zoia/internal/pipeline"
	"zoia/internal/project"
	"zoia/internal/source"
	"zoia/internal/trace"
)

var (
	errSyntax     = errors.New("syntax errors")
	errConversion = errors.New("conversion failed")
	errValidation = errors.New("invalid arguments")
)

// CheckOptions содержит опции полного прогона
type CheckOptions struct {
	MaxDiagnostics   int
	Jobs             int
	Manifest         *project.Manifest
	Cache            *DiskCache
	Sink             pipeline.ProgressSink
	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool
}

// CheckResult is the outcome of checking one file.
type CheckResult struct {
	Path   string
	FileID source.FileID
	File   *source.File
	// AST is nil for cached results and for files that did not convert.
	AST       *ast.ZoiaFileNode
	Canonical string
	Check     check.Result
	Bag       *diag.Bag
	Cached    bool
	Timing    *observ.Report
}

// Check runs lex, parse, convert and check over a single file.
func Check(ctx context.Context, path string, opts *CheckOptions) (*source.FileSet, *CheckResult, error) {
	if opts == nil {
		opts = &CheckOptions{}
	}
	fs := source.NewFileSet()
	loadStart := time.Now()
	pipeline.Emit(opts.Sink, path, pipeline.StageLoad, pipeline.StatusWorking, nil, 0)
	fileID, err := fs.Load(path)
	if err != nil {
		pipeline.Emit(opts.Sink, path, pipeline.StageLoad, pipeline.StatusError, err, time.Since(loadStart))
		return nil, nil, err
	}
	pipeline.Emit(opts.Sink, path, pipeline.StageLoad, pipeline.StatusDone, nil, time.Since(loadStart))
	return fs, checkLoaded(ctx, path, fs.Get(fileID), opts), nil
}

// checkLoaded прогоняет уже загруженный файл; вызывается из нескольких горутин,
// поэтому всё состояние - локальное.
func checkLoaded(ctx context.Context, path string, file *source.File, opts *CheckOptions) *CheckResult {
	tracer := trace.FromContext(ctx)
	fileSpan := trace.Begin(tracer, trace.Start{Scope: trace.ScopeFile, Name: "check_file", Path: path, Parent: trace.Parent(ctx)})

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	res := &CheckResult{
		Path:   path,
		FileID: file.ID,
		File:   file,
		Bag:    diag.NewBag(opts.MaxDiagnostics),
	}

	stage := func(st pipeline.Stage, fn func() error) bool {
		span := trace.Begin(tracer, trace.Start{Scope: trace.ScopePass, Name: "stage", Stage: string(st), Path: path, Parent: fileSpan.ID()})
		idx := timer.Begin(string(st))
		start := time.Now()
		pipeline.Emit(opts.Sink, path, st, pipeline.StatusWorking, nil, 0)
		err := fn()
		status := pipeline.StatusDone
		if err != nil {
			status = pipeline.StatusError
		}
		elapsed := time.Since(start)
		timer.End(idx, "")
		span.End(string(status))
		pipeline.Emit(opts.Sink, path, st, status, err, elapsed)
		return err == nil
	}

	key := CacheKey(file, opts.Manifest)
	if opts.Cache != nil {
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			payload.restore(res, res.Bag)
			res.Cached = true
			trace.Point(tracer, trace.Start{Scope: trace.ScopeFile, Name: "cache_hit", Path: path, Parent: fileSpan.ID()}, key.Short())
			pipeline.Emit(opts.Sink, path, pipeline.StageCheck, pipeline.StatusCached, nil, 0)
			finish(res, timer, opts)
			fileSpan.EndFile(res.Bag.Len(), "cached")
			return res
		}
	}

	var root *cst.Node
	ok := stage(pipeline.StageParse, func() error {
		root = parseFile(file, res.Bag, opts.MaxDiagnostics)
		if res.Bag.HasErrors() {
			return errSyntax
		}
		return nil
	})
	if ok {
		ok = stage(pipeline.StageConvert, func() error {
			res.AST = convertFile(file, root, res.Bag)
			if res.AST == nil {
				return errConversion
			}
			return nil
		})
	}
	if ok {
		stage(pipeline.StageCheck, func() error {
			res.Check = check.Check(file, res.AST, check.Options{
				Reporter: diag.BagReporter{Bag: res.Bag},
				Manifest: opts.Manifest,
			})
			res.Canonical = res.AST.Canonical()
			if len(res.Check.Errors) > 0 {
				return errValidation
			}
			return nil
		})
	}

	if opts.Cache != nil {
		// копия: finish ниже может переписать severity
		diags := append([]diag.Diagnostic(nil), res.Bag.Items()...)
		if err := opts.Cache.Put(key, newPayload(res, diags)); err != nil {
			trace.Point(tracer, trace.Start{Scope: trace.ScopeFile, Name: "cache_put_failed", Path: path, Parent: fileSpan.ID()}, err.Error())
		}
	}
	finish(res, timer, opts)
	fileSpan.EndFile(res.Bag.Len(), "")
	return res
}

// finish применяет фильтрацию диагностик и добавляет тайминги.
func finish(res *CheckResult, timer *observ.Timer, opts *CheckOptions) {
	bag := res.Bag
	if opts.IgnoreWarnings {
		bag.Filter(func(d diag.Diagnostic) bool {
			return d.Severity != diag.SevWarning && d.Severity != diag.SevInfo
		})
	}
	if opts.WarningsAsErrors {
		bag.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
	}
	bag.Sort()

	if timer != nil {
		report := timer.Report()
		res.Timing = &report
		appendTimingDiagnostic(bag, timingPayload{
			Kind:    "file",
			Path:    res.File.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		}, res.File.ID)
	}
}
