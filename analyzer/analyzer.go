package analyzer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/classdep/analyzer/dependency"
	"github.com/viant/classdep/inspector"
	"github.com/viant/classdep/inspector/bytecode"
	"github.com/viant/classdep/inspector/classfile"
	"golang.org/x/sync/errgroup"
)

// Analyzer extracts member dependencies from compiled classes
type Analyzer struct {
	config        *Config
	fs            afs.Service
	inspectors    *inspector.Factory
	logger        *slog.Logger
	concurrency   int
	graphExporter GraphExporter

	mux   sync.Mutex
	cache map[uint64]*cached
}

type cached struct {
	name  string
	edges []dependency.Access
}

// New creates an analyzer
func New(options ...Option) *Analyzer {
	ret := &Analyzer{
		config: DefaultConfig(),
		cache:  map[uint64]*cached{},
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	if ret.concurrency <= 0 {
		ret.concurrency = ret.config.Concurrency
	}
	if ret.concurrency <= 0 {
		ret.concurrency = 1
	}
	ret.inspectors = inspector.NewFactory(ret.fs)
	return ret
}

// Config returns analysis settings
func (a *Analyzer) Config() *Config {
	return a.config
}

// AnalyzeClass runs a single class through the dependency stage, reporting every edge to receiver
func (a *Analyzer) AnalyzeClass(data []byte, receiver dependency.Receiver) (string, error) {
	class, err := classfile.Parse(data)
	if err != nil {
		return "", err
	}
	return class.Name(), accept(class, receiver)
}

func accept(class *classfile.ClassFile, receiver dependency.Receiver) error {
	if err := class.Accept(dependency.NewClassVisitor(bytecode.Discard, receiver)); err != nil {
		return fmt.Errorf("failed to analyze %s: %w", class.Name(), err)
	}
	return nil
}

// AnalyzeDir analyses every class file and jar under root
func (a *Analyzer) AnalyzeDir(ctx context.Context, root string) (*Model, error) {
	return a.Analyze(ctx, root)
}

// Analyze analyses class files and jars found at locations, each being a directory or a file,
// and merges them into a single model; the graph exporter, if any, receives the result
func (a *Analyzer) Analyze(ctx context.Context, locations ...string) (*Model, error) {
	var files []string
	for _, location := range locations {
		found, err := a.listFiles(ctx, location)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	sort.Strings(files)

	model := NewModel()
	var mux sync.Mutex
	group, gCtx := errgroup.WithContext(ctx)
	group.SetLimit(a.concurrency)
	for _, URL := range files {
		URL := URL
		group.Go(func() error {
			classes, err := a.analyzeFile(gCtx, URL)
			if err != nil {
				return err
			}
			mux.Lock()
			defer mux.Unlock()
			for _, class := range classes {
				if dropped := model.Add(class); dropped != nil {
					a.logger.Warn("duplicate class", "class", class.Name,
						"kept", model.Classes[class.Name].Location, "dropped", dropped.Location)
				}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	a.logger.Info("analysis completed", "files", len(files), "classes", len(model.Classes))

	if a.graphExporter != nil {
		if err := a.graphExporter.Export(ctx, model.IRGraph()); err != nil {
			return nil, fmt.Errorf("failed to export graph: %w", err)
		}
	}
	return model, nil
}

func (a *Analyzer) listFiles(ctx context.Context, location string) ([]string, error) {
	object, err := a.fs.Object(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s: %w", location, err)
	}
	if !object.IsDir() {
		if !inspector.IsSupported(location) {
			return nil, fmt.Errorf("unsupported file type: %s", location)
		}
		return []string{object.URL()}, nil
	}
	var files []string
	visitor := func(ctx context.Context, baseURL, parent string, info os.FileInfo, reader io.Reader) (bool, error) {
		if info.IsDir() || a.config.skipPath(parent) {
			return true, nil
		}
		if inspector.IsSupported(info.Name()) {
			files = append(files, url.Join(baseURL, parent, info.Name()))
		}
		return true, nil
	}
	if err = a.fs.Walk(ctx, location, visitor); err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", location, err)
	}
	return files, nil
}

func (a *Analyzer) analyzeFile(ctx context.Context, URL string) ([]*Class, error) {
	sources, err := a.inspectors.InspectFile(ctx, URL)
	if err != nil {
		return nil, err
	}
	var classes []*Class
	for _, source := range sources {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		class, err := a.analyzeSource(source)
		if err != nil {
			if a.config.Strict {
				return nil, fmt.Errorf("%s in %s: %w", source.Name, source.Location, err)
			}
			a.logger.Warn("skipping class", "name", source.Name, "location", source.Location, "error", err)
			continue
		}
		if class != nil {
			classes = append(classes, class)
		}
	}
	return classes, nil
}

// analyzeSource returns nil class when filtered out by prefixes
func (a *Analyzer) analyzeSource(source *inspector.Source) (*Class, error) {
	fingerprint, err := classfile.Fingerprint(source.Data)
	if err != nil {
		return nil, err
	}
	entry := a.cached(fingerprint)
	if entry == nil {
		class, err := classfile.Parse(source.Data)
		if err != nil {
			return nil, err
		}
		if !a.config.Accepts(class.Name()) {
			return nil, nil
		}
		var edges []dependency.Access
		if err = accept(class, dependency.Collect(&edges)); err != nil {
			return nil, err
		}
		entry = &cached{name: class.Name(), edges: edges}
		a.mux.Lock()
		a.cache[fingerprint] = entry
		a.mux.Unlock()
		a.logger.Debug("analyzed class", "class", entry.name, "edges", len(edges))
	}
	return &Class{
		Name:        entry.name,
		Location:    source.Location,
		Fingerprint: fingerprint,
		Edges:       entry.edges,
	}, nil
}

func (a *Analyzer) cached(fingerprint uint64) *cached {
	a.mux.Lock()
	defer a.mux.Unlock()
	return a.cache[fingerprint]
}
