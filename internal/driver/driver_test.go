package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"sonar/internal/analysis"
	"sonar/internal/diag"
	"sonar/internal/rating"
	"sonar/internal/source"
)

const sampleReport = `00100
11110
10110
10111
10101
01111
00111
11100
10000
11001
00010
01010
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) final(path string) (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].File == path {
			return s.events[i], true
		}
	}
	return Event{}, false
}

func codes(bag *diag.Bag) []string {
	var out []string
	for _, d := range bag.Items() {
		out = append(out, d.Code.ID())
	}
	return out
}

func TestAnalyzeFileSample(t *testing.T) {
	path := writeFile(t, t.TempDir(), "day3.txt", sampleReport)

	_, res, err := AnalyzeFile(context.Background(), path, Options{EnableTimings: true, CheckInvariants: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", codes(res.Bag))
	}
	want := Summary{
		Count: 12, Width: 5,
		PowerOK: true, Gamma: "10110", Epsilon: "01001", GammaValue: 22, EpsilonValue: 9, Power: analysis.Product{Lo: 198},
		LifeSupportOK: true, Oxygen: "10111", CO2: "01010", OxygenValue: 23, CO2Value: 10, LifeSupport: analysis.Product{Lo: 230},
	}
	if diff := cmp.Diff(want, res.Summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
	if res.Power == nil || res.LifeSupport == nil {
		t.Fatal("detailed results missing")
	}
	if res.Timing == nil || len(res.Timing.Phases) != 3 {
		t.Fatalf("expected parse/power/life-support timings, got %+v", res.Timing)
	}
}

func TestAnalyzeFileDiagnostics(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    []string
		powerOK bool
	}{
		{"empty", "\n\n", []string{"REP1001"}, false},
		{"bad digit", "0010\n0120\n", []string{"REP1003"}, false},
		{"width mismatch", "0010\n01\n", []string{"REP1002"}, false},
		{"ambiguous", "101\n101\n000\n", []string{"RAT2001"}, true},
		{"emptied", "11\n10\n", []string{"RAT2002"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".txt", tt.content)
			_, res, err := AnalyzeFile(context.Background(), path, Options{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, codes(res.Bag)); diff != "" {
				t.Errorf("codes mismatch (-want +got):\n%s", diff)
			}
			if !res.Bag.HasErrors() {
				t.Error("expected errors in bag")
			}
			if res.Summary.PowerOK != tt.powerOK || res.Summary.LifeSupportOK {
				t.Errorf("PowerOK=%v LifeSupportOK=%v", res.Summary.PowerOK, res.Summary.LifeSupportOK)
			}
		})
	}
}

func TestAnalyzeFileLocatesParseError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.txt", "0010\n0120\n")
	fs, res, err := AnalyzeFile(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := res.Bag.Items()[0]
	start, _ := fs.Resolve(d.Primary)
	if start != (source.LineCol{Line: 2, Col: 3}) {
		t.Errorf("diagnostic at %+v, want 2:3", start)
	}
}

func TestAnalyzeFileMissing(t *testing.T) {
	_, res, err := AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"IO3001"}, codes(res.Bag)); diff != "" {
		t.Errorf("codes mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyzeDirParallel(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeFile(t, dir, "b/day3.txt", sampleReport)
	writeFile(t, dir, "a/single.txt", "1101\n")
	writeFile(t, dir, "c/broken.txt", "10\n1\n")
	writeFile(t, dir, "notes.md", "ignored")

	sink := &recordingSink{}
	core, logs := observer.New(zap.DebugLevel)
	_, results, err := AnalyzeDir(context.Background(), dir, Options{Jobs: 2, Progress: sink, Logger: zap.New(core)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var paths []string
	for _, r := range results {
		rel, _ := filepath.Rel(dir, r.Path)
		paths = append(paths, filepath.ToSlash(rel))
	}
	if diff := cmp.Diff([]string{"a/single.txt", "b/day3.txt", "c/broken.txt"}, paths); diff != "" {
		t.Fatalf("paths mismatch (-want +got):\n%s", diff)
	}

	if results[0].Summary.LifeSupport.String() != "169" || results[1].Summary.LifeSupport.String() != "230" {
		t.Errorf("life support = %s, %s", results[0].Summary.LifeSupport, results[1].Summary.LifeSupport)
	}
	if !results[2].Bag.HasErrors() {
		t.Error("broken report produced no error")
	}

	for i, want := range []Status{StatusDone, StatusDone, StatusError} {
		ev, ok := sink.final(results[i].Path)
		if !ok || ev.Status != want {
			t.Errorf("%s: final event %+v, want status %s", paths[i], ev, want)
		}
	}
	if logs.FilterMessage("analyzing directory").Len() != 1 {
		t.Error("expected a directory log entry")
	}
	failed := logs.FilterMessage("analysis failed").All()
	if len(failed) != 1 {
		t.Fatalf("expected one failure log entry, got %d", len(failed))
	}
	if got := failed[0].ContextMap()["errors"]; got != int64(1) {
		t.Errorf("failure entry errors = %v, want 1", got)
	}
}

func TestOptionsExtension(t *testing.T) {
	if got := (Options{}).Extension(); got != DefaultExt {
		t.Errorf("empty Ext = %q, want %q", got, DefaultExt)
	}
	if got := (Options{Ext: ".rep"}).Extension(); got != ".rep" {
		t.Errorf("Ext = %q, want .rep", got)
	}

	dir := t.TempDir()
	writeFile(t, dir, "a.txt", sampleReport)
	writeFile(t, dir, "notes.md", "ignored")
	listed, err := ListReportFiles(dir, (Options{}).Extension())
	if err != nil {
		t.Fatal(err)
	}
	_, results, err := AnalyzeDir(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || len(results) != 1 || listed[0] != results[0].Path {
		t.Errorf("listed %v, analyzed %d files", listed, len(results))
	}
}

func TestAnalyzeDirCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	writeFile(t, dir, "day3.txt", sampleReport)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := AnalyzeDir(ctx, dir, Options{Jobs: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAnalyzeDirEmpty(t *testing.T) {
	_, results, err := AnalyzeDir(context.Background(), t.TempDir(), Options{})
	if err != nil || len(results) != 0 {
		t.Fatalf("got %d results, err %v", len(results), err)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, t.TempDir(), "day3.txt", sampleReport)

	_, first, err := AnalyzeFile(context.Background(), path, Options{Cache: cache})
	if err != nil || first.Cached {
		t.Fatalf("first run: cached=%v err=%v", first.Cached, err)
	}
	_, second, err := AnalyzeFile(context.Background(), path, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.LifeSupport != nil {
		t.Fatalf("second run should come from the cache")
	}
	if diff := cmp.Diff(first.Summary, second.Summary); diff != "" {
		t.Errorf("cached summary mismatch (-first +second):\n%s", diff)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	_, third, err := AnalyzeFile(context.Background(), path, Options{Cache: cache})
	if err != nil || third.Cached {
		t.Fatalf("after DropAll: cached=%v err=%v", third.Cached, err)
	}
}

func TestDiskCacheSchemaMismatch(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var key [32]byte
	key[0] = 1
	if err := cache.Put(key, &DiskPayload{Power: analysis.Multiply(1<<40, 1<<40)}); err != nil {
		t.Fatal(err)
	}
	var out DiskPayload
	if ok, err := cache.Get(key, &out); !ok || err != nil || out.Power != analysis.Multiply(1<<40, 1<<40) {
		t.Fatalf("Get = %v, %v, %+v", ok, err, out)
	}

	// перезаписываем файл вручную с другой версией схемы
	if err := os.WriteFile(cache.pathFor(key), []byte{0x80}, 0o600); err != nil { // пустой msgpack map
		t.Fatal(err)
	}
	if ok, err := cache.Get(key, &out); ok || err != nil {
		t.Fatalf("stale entry: ok=%v err=%v", ok, err)
	}
}

func TestErrorDiagnosticCodes(t *testing.T) {
	tests := []struct {
		err  error
		want diag.Code
	}{
		{rating.ErrCandidatesEmptied, diag.RatEmptied},
		{&rating.AmbiguousReportError{Selector: rating.UseLeastCommon, Remaining: 2, Width: 3}, diag.RatAmbiguous},
		{os.ErrNotExist, diag.IOLoadFailed},
		{errors.New("boom"), diag.UnknownCode},
	}
	for _, tt := range tests {
		if got := ErrorDiagnostic(tt.err, 1).Code; got != tt.want {
			t.Errorf("%v: code %s, want %s", tt.err, got.ID(), tt.want.ID())
		}
	}
}
