package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// NodeFunc is one step of a graph. It reads and writes the shared state
// record. Implementations should absorb collaborator failures: degrade to a
// safe default, record a notice, and return the underlying error for the
// driver to report.
type NodeFunc func(ctx context.Context, s *State) error

// Hooks observe node execution. All fields are optional.
type Hooks struct {
	OnNodeStart func(graph, node string)
	OnNodeEnd   func(graph, node string, elapsed time.Duration, err error)
}

// Graph is an explicit adjacency description of a workflow: named nodes plus
// directed edges. Build it with AddNode/AddEdge (or Chain for the common
// linear case), then execute with Run.
type Graph struct {
	name  string
	nodes map[string]NodeFunc
	order []string            // insertion order, used as a deterministic tie-break
	edges map[string][]string // from -> to
	hooks Hooks
	log   *slog.Logger
}

// Option configures a Graph.
type Option func(*Graph)

// WithHooks registers observability hooks.
func WithHooks(h Hooks) Option {
	return func(g *Graph) { g.hooks = h }
}

// WithLogger configures a logger for node failures.
func WithLogger(l *slog.Logger) Option {
	return func(g *Graph) { g.log = l }
}

// New creates an empty graph.
func New(name string, opts ...Option) *Graph {
	g := &Graph{
		name:  name,
		nodes: make(map[string]NodeFunc),
		edges: make(map[string][]string),
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name returns the graph name.
func (g *Graph) Name() string { return g.name }

// Nodes returns the node names in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Edges returns the outgoing edges of a node.
func (g *Graph) Edges(from string) []string {
	out := make([]string, len(g.edges[from]))
	copy(out, g.edges[from])
	return out
}

// AddNode registers a named step. Re-registering a name replaces the function
// but keeps its position.
func (g *Graph) AddNode(name string, fn NodeFunc) *Graph {
	if _, exists := g.nodes[name]; !exists {
		g.order = append(g.order, name)
	}
	g.nodes[name] = fn
	return g
}

// AddEdge declares that `from` must run before `to`.
func (g *Graph) AddEdge(from, to string) *Graph {
	g.edges[from] = append(g.edges[from], to)
	return g
}

// Chain adds edges forming a linear path through the named nodes.
func (g *Graph) Chain(names ...string) *Graph {
	for i := 0; i+1 < len(names); i++ {
		g.AddEdge(names[i], names[i+1])
	}
	return g
}

// Validate checks graph integrity: every edge endpoint must be a registered
// node and the edge relation must be acyclic.
func (g *Graph) Validate() error {
	for from, tos := range g.edges {
		if _, ok := g.nodes[from]; !ok {
			return fmt.Errorf("edge references unknown node %q", from)
		}
		for _, to := range tos {
			if _, ok := g.nodes[to]; !ok {
				return fmt.Errorf("edge %q -> %q references unknown node %q", from, to, to)
			}
		}
	}
	if _, err := g.topoOrder(); err != nil {
		return err
	}
	return nil
}

// topoOrder returns the execution order via Kahn's algorithm, breaking ties by
// node insertion order so runs are reproducible.
func (g *Graph) topoOrder() ([]string, error) {
	indegree := make(map[string]int, len(g.nodes))
	for _, name := range g.order {
		indegree[name] = 0
	}
	for _, tos := range g.edges {
		for _, to := range tos {
			indegree[to]++
		}
	}

	var result []string
	remaining := len(g.nodes)
	done := make(map[string]bool, len(g.nodes))

	for remaining > 0 {
		picked := ""
		for _, name := range g.order {
			if !done[name] && indegree[name] == 0 {
				picked = name
				break
			}
		}
		if picked == "" {
			return nil, fmt.Errorf("graph %q contains a cycle", g.name)
		}
		done[picked] = true
		remaining--
		result = append(result, picked)
		for _, to := range g.edges[picked] {
			indegree[to]--
		}
	}
	return result, nil
}

// Run executes every node sequentially in topological order, mutating the
// given state in place. The run always reaches the end of the graph: a failing
// node is recorded and execution continues, so callers get a complete final
// state plus the joined node errors (if any).
func (g *Graph) Run(ctx context.Context, s *State) (*State, error) {
	if s == nil {
		s = NewState()
	}
	order, err := g.topoOrder()
	if err != nil {
		return s, err
	}

	var nodeErrs []error
	for _, name := range order {
		if g.hooks.OnNodeStart != nil {
			g.hooks.OnNodeStart(g.name, name)
		}
		started := time.Now()
		nodeErr := g.nodes[name](ctx, s)
		if g.hooks.OnNodeEnd != nil {
			g.hooks.OnNodeEnd(g.name, name, time.Since(started), nodeErr)
		}
		if nodeErr != nil {
			g.log.Warn("workflow node degraded", "graph", g.name, "node", name, "err", nodeErr)
			nodeErrs = append(nodeErrs, fmt.Errorf("node %q: %w", name, nodeErr))
		}
	}
	return s, errors.Join(nodeErrs...)
}
