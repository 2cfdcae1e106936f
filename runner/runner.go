// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/attrimpute/bfs"
	"github.com/katalvlaran/attrimpute/builder"
	"github.com/katalvlaran/attrimpute/core"
	"github.com/katalvlaran/attrimpute/strategy"
)

// Report summarises one strategy run.
type Report struct {
	RunID     string
	Dataset   string
	Strategy  string
	Output    string
	Nodes     int
	Edges     int
	Missing   int
	Fallbacks int
	Elapsed   time.Duration
}

// Option customises a Runner.
type Option func(*Runner)

// Runner holds the settings shared by every run.
type Runner struct {
	logger   *zap.Logger
	workers  int
	parallel int
	zip      bool
	tempDir  string
	options  map[string]strategy.Options
}

// New returns a Runner with a no-op logger, GOMAXPROCS workers per strategy,
// all strategies of an evaluation in parallel and no output zipping.
func New(opts ...Option) *Runner {
	r := &Runner{logger: zap.NewNop(), options: make(map[string]strategy.Options)}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("runner: WithLogger(nil)")
	}

	return func(r *Runner) { r.logger = l }
}

// WithWorkers bounds the parallel stages inside each strategy. Panics if n < 0.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("runner: WithWorkers(%d)", n))
	}

	return func(r *Runner) { r.workers = n }
}

// WithParallelStrategies bounds how many strategies Evaluate runs at once;
// 0 means all. Panics if n < 0.
func WithParallelStrategies(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("runner: WithParallelStrategies(%d)", n))
	}

	return func(r *Runner) { r.parallel = n }
}

// WithZip makes RunArchive replace its output file by "<name>.zip".
func WithZip(on bool) Option {
	return func(r *Runner) { r.zip = on }
}

// WithTempDir sets the parent of the per-run unpack directories
// (default os.TempDir()).
func WithTempDir(dir string) Option {
	return func(r *Runner) { r.tempDir = dir }
}

// WithStrategyOptions configures the named strategy before every run.
// Panics on an unknown name.
func WithStrategyOptions(name string, opts strategy.Options) Option {
	key, err := Canonical(name)
	if err != nil {
		panic(err.Error())
	}

	return func(r *Runner) { r.options[key] = opts }
}

// dataset is an unpacked archive. cleanup removes its temporary directory.
type dataset struct {
	name    string
	runID   string
	graph   *core.Graph
	cleanup func()
}

func (r *Runner) open(zipPath string) (*dataset, error) {
	name := strings.TrimSuffix(filepath.Base(zipPath), filepath.Ext(zipPath))
	runID := uuid.New().String()
	dir, err := os.MkdirTemp(r.tempDir, "attrimpute-"+runID+"-")
	if err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	cleanup := func() {
		if err := os.RemoveAll(dir); err != nil {
			r.logger.Warn("temp cleanup failed", zap.String("dir", dir), zap.Error(err))
		}
	}
	features, edges, err := unpack(zipPath, name, dir)
	if err != nil {
		cleanup()

		return nil, err
	}
	start := time.Now()
	g, err := core.Load(features, edges)
	if err != nil {
		cleanup()

		return nil, fmt.Errorf("runner: dataset %s: %w", name, err)
	}
	st := g.Stats()
	r.logger.Info("dataset loaded",
		zap.String("run", runID),
		zap.String("dataset", name),
		zap.Int("nodes", st.Nodes),
		zap.Int("edges", st.Edges),
		zap.Int("dimension", st.Dimension),
		zap.Int("missing", st.MissingValues),
		zap.Int("selfLoops", st.SelfLoops),
		zap.Int("duplicateEdges", st.DuplicateEdges),
		zap.Int("components", len(bfs.Components(g))),
		zap.Duration("elapsed", time.Since(start)))

	return &dataset{name: name, runID: runID, graph: g, cleanup: cleanup}, nil
}

// execute configures and runs one strategy and saves its features to out.
func (r *Runner) execute(ctx context.Context, ds *dataset, name, out string) (Report, error) {
	start := time.Now()
	log := r.logger.With(zap.String("run", ds.runID), zap.String("dataset", ds.name), zap.String("strategy", name))
	s, err := NewStrategy(name, ds.graph,
		strategy.WithLogger(log), strategy.WithWorkers(r.workers), strategy.WithContext(ctx))
	if err != nil {
		return Report{}, err
	}
	if opts, ok := r.options[s.Name()]; ok {
		if err := s.Configure(opts); err != nil {
			return Report{}, fmt.Errorf("runner: %s: %w", ds.name, err)
		}
	}
	if err := s.Run(); err != nil {
		return Report{}, fmt.Errorf("runner: %s: %w", ds.name, err)
	}
	res, err := s.ExtractResults()
	if err != nil {
		return Report{}, fmt.Errorf("runner: %s: %w", ds.name, err)
	}
	if err := s.SaveFeatures(ds.graph, out); err != nil {
		return Report{}, fmt.Errorf("runner: %s: %w", ds.name, err)
	}

	return Report{
		RunID:     ds.runID,
		Dataset:   ds.name,
		Strategy:  s.Name(),
		Output:    out,
		Nodes:     ds.graph.NodeCount(),
		Edges:     ds.graph.EdgeCount(),
		Missing:   ds.graph.MissingCount(),
		Fallbacks: len(res.Fallbacks),
		Elapsed:   time.Since(start),
	}, nil
}

// RunArchive unpacks "<input>/<name>.zip", runs the named strategy and writes
// "<output>/<name>_<strategy>/<name>_features.txt", or "<name>.zip" holding it
// when zipping is enabled. Temporary files are removed in every case.
//
// Errors: ErrUnknownStrategy, ErrArchive, *core.LoadError,
// *strategy.ConfigurationError and write errors, all wrapped.
func (r *Runner) RunArchive(ctx context.Context, input, output, name, strategyName string) (Report, error) {
	key, err := Canonical(strategyName)
	if err != nil {
		return Report{}, err
	}
	ds, err := r.open(filepath.Join(input, name+".zip"))
	if err != nil {
		return Report{}, err
	}
	defer ds.cleanup()

	dir := filepath.Join(output, name+"_"+key)
	out := filepath.Join(dir, name+builder.FeaturesSuffix)
	rep, err := r.execute(ctx, ds, key, out)
	if err != nil {
		return Report{}, err
	}
	if r.zip {
		zipPath := filepath.Join(dir, name+".zip")
		if err := Pack(zipPath, out); err != nil {
			return Report{}, err
		}
		if err := os.Remove(out); err != nil {
			return Report{}, fmt.Errorf("runner: %w", err)
		}
		rep.Output = zipPath
	}
	r.logger.Info("archive processed",
		zap.String("run", rep.RunID), zap.String("output", rep.Output), zap.Duration("elapsed", rep.Elapsed))

	return rep, nil
}

// Evaluate runs every registered strategy on every "*.zip" of input, in
// archive name order, writing "<output>/<name>_<strategy>.txt". The
// strategies of one archive share its graph and run concurrently. Reports
// come back archive-major, strategy names sorted.
func (r *Runner) Evaluate(ctx context.Context, input, output string) ([]Report, error) {
	archives, err := filepath.Glob(filepath.Join(input, "*.zip"))
	if err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	slices.Sort(archives)
	if len(archives) == 0 {
		return nil, fmt.Errorf("%w: no *.zip in %s", ErrArchive, input)
	}

	var reports []Report
	for _, zipPath := range archives {
		batch, err := r.evaluateOne(ctx, zipPath, output)
		if err != nil {
			return nil, err
		}
		reports = append(reports, batch...)
	}

	return reports, nil
}

func (r *Runner) evaluateOne(ctx context.Context, zipPath, output string) ([]Report, error) {
	ds, err := r.open(zipPath)
	if err != nil {
		return nil, err
	}
	defer ds.cleanup()

	names := Names()
	reports := make([]Report, len(names))
	eg, ctx := errgroup.WithContext(ctx)
	if r.parallel > 0 {
		eg.SetLimit(r.parallel)
	}
	for i, name := range names {
		eg.Go(func() error {
			out := filepath.Join(output, ds.name+"_"+name+".txt")
			rep, err := r.execute(ctx, ds, name, out)
			if err != nil {
				return err
			}
			reports[i] = rep

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}
