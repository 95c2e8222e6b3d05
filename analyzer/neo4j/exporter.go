package neo4j

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/viant/classdep/analyzer"
)

// DefaultBatchSize is the number of rows sent per UNWIND statement
const DefaultBatchSize = 1000

type runner func(ctx context.Context, cypher string, params map[string]any) error

// Exporter loads dependency graphs into Neo4j using batch UNWIND queries.
// Members become JvmMember nodes linked to JvmClass nodes; dependencies become DEPENDS_ON relationships.
type Exporter struct {
	driver    neo4j.DriverWithContext
	run       runner
	batchSize int
	clean     bool
	logger    *slog.Logger
}

// Option customizes an Exporter
type Option func(*Exporter)

// WithBatchSize sets rows per statement
func WithBatchSize(size int) Option {
	return func(e *Exporter) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// WithClean removes previously exported nodes before loading
func WithClean(clean bool) Option {
	return func(e *Exporter) {
		e.clean = clean
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// New connects to Neo4j and returns a ready-to-use exporter.
func New(ctx context.Context, uri, user, password string, options ...Option) (*Exporter, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}
	if err = driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("failed to connect to %s: %w", uri, err)
	}
	ret := newExporter(func(ctx context.Context, cypher string, params map[string]any) error {
		_, err := neo4j.ExecuteQuery(ctx, driver, cypher, params, neo4j.EagerResultTransformer)
		return err
	}, options...)
	ret.driver = driver
	return ret, nil
}

func newExporter(run runner, options ...Option) *Exporter {
	ret := &Exporter{run: run, batchSize: DefaultBatchSize}
	for _, opt := range options {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	return ret
}

// Close releases the underlying Neo4j driver resources.
func (e *Exporter) Close(ctx context.Context) error {
	if e.driver == nil {
		return nil
	}
	return e.driver.Close(ctx)
}

const (
	cleanQuery = `MATCH (n) WHERE n:JvmMember OR n:JvmClass DETACH DELETE n`

	memberQuery = `UNWIND $batch AS row
		 MERGE (c:JvmClass {name: row.owner})
		 MERGE (n:JvmMember {id: row.id})
		 SET n.owner = row.owner, n.name = row.name,
		     n.location = row.location, n.fingerprint = row.fingerprint
		 MERGE (n)-[:DECLARED_IN]->(c)`

	dependencyQuery = `UNWIND $batch AS row
		 MATCH (source:JvmMember {id: row.source}), (target:JvmMember {id: row.target})
		 MERGE (source)-[r:DEPENDS_ON]->(target)
		 SET r.count = row.count`
)

var indexQueries = []string{
	"CREATE INDEX jvm_member_id IF NOT EXISTS FOR (n:JvmMember) ON (n.id)",
	"CREATE INDEX jvm_class_name IF NOT EXISTS FOR (n:JvmClass) ON (n.name)",
}

// Export upserts graph nodes then relationships
func (e *Exporter) Export(ctx context.Context, graph *analyzer.IRGraph) error {
	if e.clean {
		if err := e.run(ctx, cleanQuery, nil); err != nil {
			return fmt.Errorf("failed to clean graph: %w", err)
		}
	}
	for _, query := range indexQueries {
		if err := e.run(ctx, query, nil); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	e.logger.Info("loading members", "count", len(graph.Nodes))
	if err := e.load(ctx, memberQuery, memberRows(graph.Nodes)); err != nil {
		return fmt.Errorf("failed to load members: %w", err)
	}
	e.logger.Info("loading dependencies", "count", len(graph.Edges))
	if err := e.load(ctx, dependencyQuery, dependencyRows(graph.Edges)); err != nil {
		return fmt.Errorf("failed to load dependencies: %w", err)
	}
	return nil
}

func (e *Exporter) load(ctx context.Context, cypher string, rows []map[string]any) error {
	for start := 0; start < len(rows); start += e.batchSize {
		end := start + e.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if err := e.run(ctx, cypher, map[string]any{"batch": rows[start:end]}); err != nil {
			return err
		}
	}
	return nil
}

func memberRows(nodes []analyzer.IRNode) []map[string]any {
	rows := make([]map[string]any, 0, len(nodes))
	for _, node := range nodes {
		rows = append(rows, map[string]any{
			"id":          node.ID,
			"owner":       node.Properties[analyzer.PropertyOwner],
			"name":        node.Properties[analyzer.PropertyName],
			"location":    node.Properties[analyzer.PropertySource],
			"fingerprint": node.Properties[analyzer.PropertyHash],
		})
	}
	return rows
}

func dependencyRows(edges []analyzer.IREdge) []map[string]any {
	rows := make([]map[string]any, 0, len(edges))
	for _, edge := range edges {
		rows = append(rows, map[string]any{
			"source": edge.Source,
			"target": edge.Target,
			"count":  edge.Properties[analyzer.PropertyCount],
		})
	}
	return rows
}
