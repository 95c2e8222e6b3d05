package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/classdep/analyzer/dependency"
	"gopkg.in/yaml.v3"
)

// Node and edge types of the intermediate representation
const (
	NodeMember     = "member"
	EdgeDependsOn  = "DEPENDS_ON"
	PropertyOwner  = "owner"
	PropertyName   = "name"
	PropertyCount  = "count"
	PropertySource = "location"
	PropertyHash   = "fingerprint"
)

// IRNode represents a node in the intermediate representation graph.
type IRNode struct {
	ID         string                 `yaml:"id"`
	Type       string                 `yaml:"type"`
	Properties map[string]interface{} `yaml:"properties,omitempty"`
}

// IREdge represents an edge in the intermediate representation graph.
type IREdge struct {
	Source     string                 `yaml:"source"`
	Target     string                 `yaml:"target"`
	Type       string                 `yaml:"type"`
	Properties map[string]interface{} `yaml:"properties,omitempty"`
}

// IRGraph holds the nodes and edges for the intermediate representation.
type IRGraph struct {
	Nodes []IRNode `yaml:"nodes"`
	Edges []IREdge `yaml:"edges"`
}

// GraphExporter defines an interface to export an IRGraph to a storage backend (e.g., Neo4j).
type GraphExporter interface {
	Export(ctx context.Context, graph *IRGraph) error
}

// IRGraph builds member nodes and deduplicated dependency edges, counting repeated references.
// Members declared by analysed classes carry their class location and fingerprint.
func (m *Model) IRGraph() *IRGraph {
	result := &IRGraph{}
	nodes := map[string]bool{}
	addNode := func(member dependency.Member) {
		id := member.String()
		if nodes[id] {
			return
		}
		nodes[id] = true
		node := IRNode{ID: id, Type: NodeMember, Properties: map[string]interface{}{
			PropertyOwner: member.Owner,
			PropertyName:  member.Name,
		}}
		if class, ok := m.Classes[member.Owner]; ok {
			node.Properties[PropertySource] = class.Location
			node.Properties[PropertyHash] = strconv.FormatUint(class.Fingerprint, 16)
		}
		result.Nodes = append(result.Nodes, node)
	}
	counts := map[dependency.Access]int{}
	var order []dependency.Access
	for _, edge := range m.Edges() {
		addNode(edge.Source)
		addNode(edge.Dest)
		if counts[edge] == 0 {
			order = append(order, edge)
		}
		counts[edge]++
	}
	for _, edge := range order {
		result.Edges = append(result.Edges, IREdge{
			Source:     edge.Source.String(),
			Target:     edge.Dest.String(),
			Type:       EdgeDependsOn,
			Properties: map[string]interface{}{PropertyCount: counts[edge]},
		})
	}
	sort.SliceStable(result.Nodes, func(i, j int) bool {
		return result.Nodes[i].ID < result.Nodes[j].ID
	})
	return result
}

// YAMLExporter writes the IRGraph as YAML to a URL
type YAMLExporter struct {
	fs  afs.Service
	URL string
}

// NewYAMLExporter creates an exporter uploading to URL
func NewYAMLExporter(fs afs.Service, URL string) *YAMLExporter {
	if fs == nil {
		fs = afs.New()
	}
	return &YAMLExporter{fs: fs, URL: URL}
}

// Export uploads graph
func (e *YAMLExporter) Export(ctx context.Context, graph *IRGraph) error {
	data, err := yaml.Marshal(graph)
	if err != nil {
		return err
	}
	if err = e.fs.Upload(ctx, e.URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to upload %s: %w", e.URL, err)
	}
	return nil
}
