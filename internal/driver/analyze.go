package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sonar/internal/analysis"
	"sonar/internal/diag"
	"sonar/internal/observ"
	"sonar/internal/report"
	"sonar/internal/source"
	"sonar/internal/testkit"
	"sonar/internal/trace"
)

// AnalyzeFile loads one report file and computes both figures.
// Problems with the file itself end up as diagnostics in the result's Bag;
// the returned error is reserved for cancellation.
func AnalyzeFile(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	fileSet := source.NewFileSet()
	res := analyzePath(ctx, fileSet, path, opts)
	if err := ctx.Err(); err != nil {
		return fileSet, res, err
	}
	return fileSet, res, nil
}

// AnalyzeDir analyzes every report file under dir in parallel. Files are
// loaded sequentially first; results are returned in path order.
func AnalyzeDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []FileResult, error) {
	files, err := ListReportFiles(dir, opts.Extension())
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	log := opts.logger()
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "analyze-dir")
	span.WithExtra("dir", dir).WithExtra("files", fmt.Sprint(len(files)))
	defer span.End("")

	// Предзагрузка: FileSet не потокобезопасен на запись
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы диагностика указывала на путь
			fileID = fileSet.AddVirtual(path, nil)
			loadErrors[path] = err
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	log.Debug("analyzing directory", zap.String("dir", dir), zap.Int("files", len(files)), zap.Int("jobs", jobs))

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				results[i] = loadFailure(path, fileIDs[path], loadErr, opts)
				return nil
			}
			results[i] = analyzeLoaded(gctx, fileSet, fileIDs[path], opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}

// ListReportFiles returns the sorted list of files under dir with extension ext.
func ListReportFiles(dir, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
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

func analyzePath(ctx context.Context, fileSet *source.FileSet, path string, opts Options) *FileResult {
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	fileID, err := fileSet.Load(path)
	if err != nil {
		res := loadFailure(path, fileSet.AddVirtual(path, nil), err, opts)
		return &res
	}
	res := analyzeLoaded(ctx, fileSet, fileID, opts)
	return &res
}

func loadFailure(path string, fileID source.FileID, err error, opts Options) FileResult {
	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFailed, source.Span{File: fileID}, "failed to load file: "+err.Error()))
	opts.logger().Warn("failed to load report", zap.String("path", path), zap.Error(err))
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
	return FileResult{Path: path, FileID: fileID, Bag: bag}
}

// analyzeLoaded runs the synchronous core over one loaded file. It only reads
// from fileSet and is safe to call from several goroutines.
func analyzeLoaded(ctx context.Context, fileSet *source.FileSet, fileID source.FileID, opts Options) (res FileResult) {
	file := fileSet.Get(fileID)
	log := opts.logger().With(zap.String("path", file.Path))
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := newReporter(bag, log)
	res = FileResult{Path: file.Path, FileID: fileID, Bag: bag}
	started := time.Now()

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}
	begin := func(name string) int {
		if timer == nil {
			return -1
		}
		return timer.Begin(name)
	}
	end := func(idx int, note string) {
		if timer == nil || idx < 0 {
			return
		}
		timer.End(idx, note)
	}
	defer func() {
		if timer != nil {
			rep := timer.Report()
			res.Timing = &rep
		}
	}()

	ctx, span := trace.Start(ctx, trace.ScopeFile, "file")
	span.WithExtra("path", file.Path)

	fail := func(stage Stage, err error) FileResult {
		reporter.Report(ErrorDiagnostic(err, fileID))
		emit(opts.Progress, Event{File: file.Path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		log.Debug("analysis failed",
			zap.String("stage", string(stage)),
			zap.Int("errors", bag.Count(diag.SevError)),
			zap.Error(err))
		span.End("error")
		return res
	}

	if opts.Cache != nil {
		idx := begin("cache")
		var payload DiskPayload
		ok, err := opts.Cache.Get(file.Hash, &payload)
		end(idx, "")
		switch {
		case err != nil:
			reporter.Report(diag.NewWarning(diag.IOCacheFailed, source.Span{File: fileID}, "cache read failed: "+err.Error()))
			log.Warn("cache read failed", zap.Error(err))
		case ok:
			res.Summary = summaryFromPayload(&payload)
			res.Cached = true
			emit(opts.Progress, Event{File: file.Path, Stage: StageLifeSupport, Status: StatusDone, Elapsed: time.Since(started)})
			log.Debug("cache hit")
			span.End("cached")
			return res
		}
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	idx := begin("parse")
	rep, err := report.Parse(file)
	if err != nil {
		end(idx, "error")
		return fail(StageParse, err)
	}
	end(idx, fmt.Sprintf("%d×%d", rep.Len(), rep.Width()))
	res.Summary.Count = rep.Len()
	res.Summary.Width = rep.Width()

	// Мощность и система жизнеобеспечения независимы: ошибка одной не отменяет другую
	emit(opts.Progress, Event{File: file.Path, Stage: StagePower, Status: StatusWorking})
	idx = begin("power")
	power, err := analysis.AnalyzePower(ctx, rep)
	end(idx, "")
	if err != nil {
		reporter.Report(ErrorDiagnostic(err, fileID))
	} else {
		res.Power = &power
		res.Summary.PowerOK = true
		res.Summary.Gamma = power.Gamma.String()
		res.Summary.Epsilon = power.Epsilon.String()
		res.Summary.GammaValue = power.GammaValue
		res.Summary.EpsilonValue = power.EpsilonValue
		res.Summary.Power = power.Value
		if opts.CheckInvariants {
			if err := testkit.CheckPower(power); err != nil {
				diag.ReportError(reporter, diag.InvCheckFailed, source.Span{File: fileID}, "power: "+err.Error()).Emit()
			}
		}
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageLifeSupport, Status: StatusWorking})
	idx = begin("life-support")
	ls, err := analysis.AnalyzeLifeSupport(ctx, rep)
	end(idx, "")
	if err != nil {
		return fail(StageLifeSupport, err)
	}
	res.LifeSupport = &ls
	res.Summary.LifeSupportOK = true
	res.Summary.Oxygen = ls.Oxygen.Survivor.String()
	res.Summary.CO2 = ls.CO2.Survivor.String()
	res.Summary.OxygenValue = ls.Oxygen.Value
	res.Summary.CO2Value = ls.CO2.Value
	res.Summary.LifeSupport = ls.Value
	if opts.CheckInvariants {
		if err := testkit.CheckLifeSupport(ls, rep.Len()); err != nil {
			at := source.Span{File: fileID}
			diag.ReportError(reporter, diag.InvCheckFailed, at, "life support: "+err.Error()).
				WithNote(at, "run with --trace-level=detail to see every filter step").
				Emit()
		}
	}

	if bag.HasErrors() {
		emit(opts.Progress, Event{File: file.Path, Stage: StageLifeSupport, Status: StatusError, Elapsed: time.Since(started)})
		span.End("error")
		return res
	}

	if opts.Cache != nil {
		idx := begin("cache-store")
		if err := opts.Cache.Put(file.Hash, payloadFromSummary(&res.Summary)); err != nil {
			reporter.Report(diag.NewWarning(diag.IOCacheFailed, source.Span{File: fileID}, "cache write failed: "+err.Error()))
			log.Warn("cache write failed", zap.Error(err))
		}
		end(idx, "")
	}

	emit(opts.Progress, Event{File: file.Path, Stage: StageLifeSupport, Status: StatusDone, Elapsed: time.Since(started)})
	log.Debug("report analyzed",
		zap.Int("warnings", bag.Count(diag.SevWarning)),
		zap.Stringer("power", res.Summary.Power),
		zap.Stringer("life_support", res.Summary.LifeSupport),
		zap.Duration("elapsed", time.Since(started)))
	span.End(fmt.Sprintf("power=%s life=%s", res.Summary.Power, res.Summary.LifeSupport))
	return res
}
