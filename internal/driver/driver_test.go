package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zoia/internal/diag"
	"zoia/internal/pipeline"
	"zoia/internal/project"
	"zoia/internal/token"
	"zoia/internal/trace"
)

const testManifest = `
[project]
name = "story"

[header]
title = "Text"

[commands.note]
_ = ["Text"]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func loadTestManifest(t *testing.T) *project.Manifest {
	t.Helper()
	m, err := project.ParseManifest("zoia.toml", []byte(testManifest), nil)
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	return m
}

func codeIDs(bag *diag.Bag) string {
	ids := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		ids = append(ids, d.Severity.String()+":"+d.Code.ID())
	}
	return strings.Join(ids, ",")
}

func TestTokenizeEndsWithEOF(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.zoia", "\\zoia|\nHello &bob")
	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if len(res.Tokens) == 0 || res.Tokens[len(res.Tokens)-1].Kind != token.EOF {
		t.Fatalf("tokens must end with EOF: %+v", res.Tokens)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", codeIDs(res.Bag))
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	if _, err := Tokenize(filepath.Join(t.TempDir(), "missing.zoia"), 0); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}

func TestConvertProducesAST(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.zoia", "\\zoia|\nHello *world*")
	res, err := Convert(path, 0)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.AST == nil {
		t.Fatalf("AST is nil: %s", codeIDs(res.Bag))
	}
	if got, want := res.AST.Canonical(), "\\zoia|\nHello *world*"; got != want {
		t.Fatalf("canonical = %q, want %q", got, want)
	}
}

func TestConvertSkippedOnSyntaxErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.zoia", "\\zoia[title = x\nHello")
	res, err := Convert(path, 0)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.AST != nil {
		t.Fatalf("AST must be nil for a broken file")
	}
	if !res.Bag.HasErrors() {
		t.Fatalf("expected syntax errors")
	}
	if res.Root == nil {
		t.Fatalf("parse tree is always returned")
	}
}

func TestCheckFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.zoia", "\\zoia[title = My   Story]\n\\note[Hi]")
	rec := &pipeline.Recorder{}
	_, res, err := Check(context.Background(), path, &CheckOptions{
		Manifest: loadTestManifest(t),
		Sink:     rec,
	})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", codeIDs(res.Bag))
	}
	if got, want := res.Canonical, "\\zoia[title = My   Story,\n]\n\\note[Hi,\n]"; got != want {
		t.Fatalf("canonical = %q, want %q", got, want)
	}
	if len(res.Check.Header) != 1 || res.Check.Header[0].Canonical != "My   Story" {
		t.Fatalf("header = %+v", res.Check.Header)
	}

	events := rec.Events()
	last := events[len(events)-1]
	if !last.Final() || last.Stage != pipeline.StageCheck {
		t.Fatalf("last event = %+v", last)
	}
	tm := rec.Timings()
	for _, st := range pipeline.Stages {
		if !tm.Has(st) {
			t.Errorf("no timing for stage %s", st)
		}
	}
}

func TestCheckTracesFileStages(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.zoia", "\\zoia|\n\\mystery[x]")
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	_, res, err := Check(ctx, path, &CheckOptions{Manifest: loadTestManifest(t)})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	var stages []string
	var fileEnd *trace.Event
	for _, ev := range ring.Snapshot() {
		if ev.Path != path {
			t.Fatalf("event without file path: %+v", ev)
		}
		if ev.Kind == trace.KindSpanBegin && ev.Stage != "" {
			stages = append(stages, ev.Stage)
		}
		if ev.HasDiagnostics() {
			fileEnd = &ev
		}
	}
	if got := strings.Join(stages, ","); got != "parse,convert,check" {
		t.Fatalf("stages = %s", got)
	}
	if fileEnd == nil || fileEnd.Diagnostics != res.Bag.Len() || fileEnd.Diagnostics == 0 {
		t.Fatalf("file end = %+v, diagnostics %d", fileEnd, res.Bag.Len())
	}
	if len(trace.InFlight()) != 0 {
		t.Fatalf("file still in flight: %v", trace.InFlight())
	}
}

func TestCheckStopsAfterSyntaxErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.zoia", "\\zoia[title = x\nHello")
	rec := &pipeline.Recorder{}
	_, res, err := Check(context.Background(), path, &CheckOptions{Sink: rec})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.AST != nil || res.Canonical != "" {
		t.Fatalf("broken file must not be converted")
	}
	for _, ev := range rec.Events() {
		if ev.Stage == pipeline.StageConvert || ev.Stage == pipeline.StageCheck {
			t.Fatalf("unexpected event after parse failure: %+v", ev)
		}
	}
	events := rec.Events()
	if last := events[len(events)-1]; last.Status != pipeline.StatusError || last.Err != errSyntax {
		t.Fatalf("last event = %+v", last)
	}
}

func TestCheckWarningFilters(t *testing.T) {
	src := "\\zoia[title = T]\n\\foo|"
	tests := []struct {
		name string
		opts CheckOptions
		want string
	}{
		{"default", CheckOptions{}, "WARNING:VAL4005"},
		{"ignore", CheckOptions{IgnoreWarnings: true}, ""},
		{"as errors", CheckOptions{WarningsAsErrors: true}, "ERROR:VAL4005"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "a.zoia", src)
			opts := tt.opts
			opts.Manifest = loadTestManifest(t)
			_, res, err := Check(context.Background(), path, &opts)
			if err != nil {
				t.Fatalf("Check: %v", err)
			}
			if got := codeIDs(res.Bag); got != tt.want {
				t.Fatalf("diagnostics = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCheckTimings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.zoia", "\\zoia|\nHello")
	_, res, err := Check(context.Background(), path, &CheckOptions{EnableTimings: true})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Timing == nil || len(res.Timing.Phases) != 3 {
		t.Fatalf("timing = %+v", res.Timing)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.ObsTimings || len(items[0].Notes) != 1 {
		t.Fatalf("diagnostics = %+v", items)
	}
	if !strings.Contains(items[0].Notes[0].Msg, `"phases"`) {
		t.Fatalf("timing note = %q", items[0].Notes[0].Msg)
	}
}

func TestCheckUsesDiskCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("cache: %v", err)
	}
	m := loadTestManifest(t)
	path := writeFile(t, t.TempDir(), "a.zoia", "\\zoia[title = T]\n\\foo|\n\\note[x]")
	opts := &CheckOptions{Manifest: m, Cache: cache}

	_, first, err := Check(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("first Check: %v", err)
	}
	if first.Cached {
		t.Fatalf("first run cannot be cached")
	}

	rec := &pipeline.Recorder{}
	opts.Sink = rec
	_, second, err := Check(context.Background(), path, opts)
	if err != nil {
		t.Fatalf("second Check: %v", err)
	}
	if !second.Cached || second.AST != nil {
		t.Fatalf("second run must come from the cache")
	}
	if second.Canonical != first.Canonical {
		t.Fatalf("canonical = %q, want %q", second.Canonical, first.Canonical)
	}
	if codeIDs(second.Bag) != codeIDs(first.Bag) {
		t.Fatalf("diagnostics = %s, want %s", codeIDs(second.Bag), codeIDs(first.Bag))
	}
	if len(second.Check.Values) != len(first.Check.Values) || second.Check.Values[0].Pos.File != first.File.Path {
		t.Fatalf("values = %+v", second.Check.Values)
	}
	events := rec.Events()
	if last := events[len(events)-1]; last.Status != pipeline.StatusCached {
		t.Fatalf("last event = %+v", last)
	}

	// другой манифест - другой ключ
	other, err := project.ParseManifest("zoia.toml", []byte(testManifest+"\n[commands.foo]\n"), nil)
	if err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if CacheKey(first.File, other) == CacheKey(first.File, m) {
		t.Fatalf("cache key ignores the manifest")
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	_, third, err := Check(context.Background(), path, &CheckOptions{Manifest: m, Cache: cache})
	if err != nil {
		t.Fatalf("third Check: %v", err)
	}
	if third.Cached {
		t.Fatalf("cache was dropped")
	}
}

func TestCheckDirSortedAndParallel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.zoia", "\\zoia|\nB")
	writeFile(t, dir, "a.zoia", "\\zoia|\nA")
	writeFile(t, dir, "sub/c.zoia", "\\zoia[oops\nC")
	writeFile(t, dir, ".hidden/d.zoia", "\\zoia|\nD")
	writeFile(t, dir, "notes.txt", "not markup")

	rec := &pipeline.Recorder{}
	fs, results, err := CheckDir(context.Background(), dir, &CheckOptions{Jobs: 2, Sink: rec})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if fs == nil {
		t.Fatalf("expected fileset")
	}
	var names []string
	for _, r := range results {
		rel, _ := filepath.Rel(dir, r.Path)
		names = append(names, filepath.ToSlash(rel))
	}
	if got := strings.Join(names, ","); got != "a.zoia,b.zoia,sub/c.zoia" {
		t.Fatalf("files = %s", got)
	}
	if results[0].Canonical != "\\zoia|\nA" || results[1].Bag.HasErrors() {
		t.Fatalf("unexpected results: %+v %+v", results[0], results[1])
	}
	if !results[2].Bag.HasErrors() {
		t.Fatalf("sub/c.zoia has a syntax error")
	}

	finals := 0
	for _, ev := range rec.Events() {
		if ev.File != "" && ev.Final() {
			finals++
		}
	}
	if finals != 3 {
		t.Fatalf("final events = %d, want 3", finals)
	}

	merged := MergeBags(results)
	if merged.Len() != results[2].Bag.Len() {
		t.Fatalf("merged = %d diagnostics", merged.Len())
	}
}

func TestCheckDirEmpty(t *testing.T) {
	fs, results, err := CheckDir(context.Background(), t.TempDir(), nil)
	if err != nil || fs == nil || len(results) != 0 {
		t.Fatalf("CheckDir = %v, %d results, %v", fs, len(results), err)
	}
}
