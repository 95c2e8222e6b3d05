package neo4j

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/classdep/analyzer"
	"github.com/viant/classdep/analyzer/dependency"
)

type statement struct {
	cypher string
	rows   int
}

func sampleGraph() *analyzer.IRGraph {
	model := analyzer.NewModel()
	model.Add(&analyzer.Class{Name: "com/x/Foo", Location: "Foo.class", Fingerprint: 255, Edges: []dependency.Access{
		{Source: dependency.Member{Owner: "com/x/Foo", Name: "bar"}, Dest: dependency.Member{Owner: "com/x/Baz", Name: "qux"}},
		{Source: dependency.Member{Owner: "com/x/Foo", Name: "bar"}, Dest: dependency.Member{Owner: "com/x/Baz", Name: "val"}},
		{Source: dependency.Member{Owner: "com/x/Foo", Name: "baz"}, Dest: dependency.Member{Owner: "com/x/Baz", Name: "val"}},
	}})
	return model.IRGraph()
}

func TestExporter_Export(t *testing.T) {
	tests := []struct {
		description string
		options     []Option
		expected    []statement
	}{
		{
			description: "single batch",
			expected: []statement{
				{cypher: indexQueries[0]},
				{cypher: indexQueries[1]},
				{cypher: memberQuery, rows: 4},
				{cypher: dependencyQuery, rows: 3},
			},
		},
		{
			description: "batched with clean",
			options:     []Option{WithBatchSize(2), WithClean(true)},
			expected: []statement{
				{cypher: cleanQuery},
				{cypher: indexQueries[0]},
				{cypher: indexQueries[1]},
				{cypher: memberQuery, rows: 2},
				{cypher: memberQuery, rows: 2},
				{cypher: dependencyQuery, rows: 2},
				{cypher: dependencyQuery, rows: 1},
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			var actual []statement
			run := func(ctx context.Context, cypher string, params map[string]any) error {
				stmt := statement{cypher: cypher}
				if batch, ok := params["batch"].([]map[string]any); ok {
					stmt.rows = len(batch)
				}
				actual = append(actual, stmt)
				return nil
			}
			options := append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, tc.options...)
			exporter := newExporter(run, options...)
			require.NoError(t, exporter.Export(context.Background(), sampleGraph()))
			assert.Equal(t, tc.expected, actual)
			assert.NoError(t, exporter.Close(context.Background()))
		})
	}
}

func TestExporter_Export_Error(t *testing.T) {
	failure := errors.New("unavailable")
	exporter := newExporter(func(ctx context.Context, cypher string, params map[string]any) error {
		if cypher == memberQuery {
			return failure
		}
		return nil
	}, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	err := exporter.Export(context.Background(), sampleGraph())
	assert.ErrorIs(t, err, failure)
}

func TestMemberRows(t *testing.T) {
	rows := memberRows(sampleGraph().Nodes)
	require.Len(t, rows, 4)
	assert.Equal(t, map[string]any{
		"id":          "com/x/Baz.qux",
		"owner":       "com/x/Baz",
		"name":        "qux",
		"location":    nil,
		"fingerprint": nil,
	}, rows[0])
	assert.Equal(t, map[string]any{
		"id":          "com/x/Foo.bar",
		"owner":       "com/x/Foo",
		"name":        "bar",
		"location":    "Foo.class",
		"fingerprint": "ff",
	}, rows[2])
}
