package analyzer

import (
	"errors"
	"sort"

	"github.com/dominikbraun/graph"
	"github.com/viant/classdep/analyzer/dependency"
)

// Class represents the dependencies extracted from one compiled class
type Class struct {
	Name        string              `yaml:"name"`
	Location    string              `yaml:"location"`
	Fingerprint uint64              `yaml:"fingerprint"`
	Edges       []dependency.Access `yaml:"edges"`
}

// Model holds analysed classes keyed by internal class name
type Model struct {
	Classes map[string]*Class `yaml:"classes"`
}

// NewModel creates an empty model
func NewModel() *Model {
	return &Model{Classes: map[string]*Class{}}
}

// Add registers class; for a name already present the class with the lower location wins
// and the other one is returned as dropped
func (m *Model) Add(class *Class) (dropped *Class) {
	prev, ok := m.Classes[class.Name]
	if !ok {
		m.Classes[class.Name] = class
		return nil
	}
	if class.Location < prev.Location {
		m.Classes[class.Name] = class
		return prev
	}
	return class
}

// ClassNames returns sorted class names
func (m *Model) ClassNames() []string {
	names := make([]string, 0, len(m.Classes))
	for name := range m.Classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Edges returns every edge ordered by class name, then program order
func (m *Model) Edges() []dependency.Access {
	var result []dependency.Access
	for _, name := range m.ClassNames() {
		result = append(result, m.Classes[name].Edges...)
	}
	return result
}

func memberHash(member dependency.Member) string {
	return member.String()
}

// Graph builds a directed member graph; repeated edges collapse into one
func (m *Model) Graph() (graph.Graph[string, dependency.Member], error) {
	g := graph.New(memberHash, graph.Directed())
	for _, edge := range m.Edges() {
		for _, member := range []dependency.Member{edge.Source, edge.Dest} {
			if err := g.AddVertex(member); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
				return nil, err
			}
		}
		if err := g.AddEdge(memberHash(edge.Source), memberHash(edge.Dest)); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return nil, err
		}
	}
	return g, nil
}

// Dependencies returns sorted classes owning members reachable from className's members
// within depth hops (depth <= 0 means unlimited); className itself and owners rejected
// by filter are excluded
func (m *Model) Dependencies(className string, depth int, filter func(owner string) bool) ([]string, error) {
	g, err := m.Graph()
	if err != nil {
		return nil, err
	}
	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	visited := map[string]bool{}
	var frontier []string
	for hash := range adjacency {
		member, err := g.Vertex(hash)
		if err != nil {
			return nil, err
		}
		if member.Owner == className {
			visited[hash] = true
			frontier = append(frontier, hash)
		}
	}
	owners := map[string]bool{}
	for hop := 0; len(frontier) > 0 && (depth <= 0 || hop < depth); hop++ {
		var next []string
		for _, hash := range frontier {
			for target := range adjacency[hash] {
				if visited[target] {
					continue
				}
				visited[target] = true
				member, err := g.Vertex(target)
				if err != nil {
					return nil, err
				}
				if member.Owner != className {
					owners[member.Owner] = true
				}
				next = append(next, target)
			}
		}
		frontier = next
	}
	result := make([]string, 0, len(owners))
	for owner := range owners {
		if filter == nil || filter(owner) {
			result = append(result, owner)
		}
	}
	sort.Strings(result)
	return result, nil
}

// ClassGraph builds a directed class graph from member edges, ignoring edges within a class
func (m *Model) ClassGraph() (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed())
	for _, edge := range m.Edges() {
		source, dest := edge.Source.Owner, edge.Dest.Owner
		if source == dest {
			continue
		}
		for _, owner := range []string{source, dest} {
			if err := g.AddVertex(owner); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
				return nil, err
			}
		}
		if err := g.AddEdge(source, dest); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
			return nil, err
		}
	}
	return g, nil
}

// Cycles returns groups of classes depending on each other, each sorted, ordered by first class
func (m *Model) Cycles() ([][]string, error) {
	g, err := m.ClassGraph()
	if err != nil {
		return nil, err
	}
	components, err := graph.StronglyConnectedComponents(g)
	if err != nil {
		return nil, err
	}
	var result [][]string
	for _, component := range components {
		if len(component) < 2 {
			continue
		}
		sort.Strings(component)
		result = append(result, component)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i][0] < result[j][0]
	})
	return result, nil
}
