// Package hierarchy turns flat category lists into forests and rolls
// transaction amounts up through them. Everything here is pure: no I/O, no
// shared state, safe for concurrent use.
package hierarchy

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"apexfinance/internal/models"
)

// PathSeparator joins ancestor names in a node's FullPath.
const PathSeparator = " / "

// ErrCycleDetected is wrapped by Forest.Err when the parent links of the
// input contained at least one cycle.
var ErrCycleDetected = errors.New("category hierarchy contains a cycle")

// Node is a category positioned in the forest.
type Node struct {
	Category models.Category `json:"category"`
	FullPath string          `json:"full_path"`
	Level    int             `json:"level"`
	Children []*Node         `json:"children"`
}

// ID is shorthand for the category id.
func (n *Node) ID() string { return n.Category.ID }

// Descendants returns the ids of n and every category below it, pre-order.
func (n *Node) Descendants() []string {
	ids := []string{n.ID()}
	for _, child := range n.Children {
		ids = append(ids, child.Descendants()...)
	}
	return ids
}

// Forest is the result of Build.
type Forest struct {
	Roots []*Node `json:"roots"`
	// Cycles holds the id of every category that was promoted to root to
	// break a cycle, in detection order.
	Cycles []string `json:"cycles,omitempty"`

	byID map[string]*Node
	flat []*Node
}

// Err reports structural problems found while building. The forest is
// usable either way.
func (f *Forest) Err() error {
	if len(f.Cycles) == 0 {
		return nil
	}
	return fmt.Errorf("%w: broken at %s", ErrCycleDetected, strings.Join(f.Cycles, ", "))
}

// Node looks up a node by category id.
func (f *Forest) Node(id string) (*Node, bool) {
	n, ok := f.byID[id]
	return n, ok
}

// Len is the number of categories in the forest.
func (f *Forest) Len() int { return len(f.flat) }

// Flatten returns every node in display order: pre-order by default, sorted
// by FullPath when built WithCanonicalOrder.
func (f *Forest) Flatten() []*Node {
	out := make([]*Node, len(f.flat))
	copy(out, f.flat)
	return out
}

// Stats summarises a forest.
type Stats struct {
	TotalCategories int `json:"total_categories"`
	ProjectCount    int `json:"project_count"`
	MaxLevel        int `json:"max_level"`
}

// Stats counts categories and projects and finds the deepest level.
func (f *Forest) Stats() Stats {
	var s Stats
	for _, n := range f.flat {
		s.TotalCategories++
		if n.Category.IsProject {
			s.ProjectCount++
		}
		if n.Level > s.MaxLevel {
			s.MaxLevel = n.Level
		}
	}
	return s
}

type buildOptions struct {
	canonical bool
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

// WithCanonicalOrder sorts siblings, roots and the flattened listing by
// FullPath instead of keeping input order.
func WithCanonicalOrder() BuildOption {
	return func(o *buildOptions) { o.canonical = true }
}

const noParent = -1

// walk states
const (
	unvisited = iota
	onPath
	done
)

// Build arranges categories into a forest. A category is a root when it has
// no parent or its parent is not part of the input. Parent cycles are broken
// by promoting the member that comes first in the input to root and are
// reported through Forest.Cycles and Forest.Err. Duplicate ids keep the
// first occurrence.
func Build(categories []models.Category, opts ...BuildOption) *Forest {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	index := make(map[string]int, len(categories))
	cats := make([]models.Category, 0, len(categories))
	for _, c := range categories {
		if _, dup := index[c.ID]; dup {
			continue
		}
		index[c.ID] = len(cats)
		cats = append(cats, c)
	}

	parent := make([]int, len(cats))
	for i, c := range cats {
		parent[i] = noParent
		if c.ParentID == nil {
			continue
		}
		if p, ok := index[*c.ParentID]; ok {
			parent[i] = p
		}
	}

	forest := &Forest{byID: make(map[string]*Node, len(cats))}
	forest.Cycles = breakCycles(cats, parent)

	nodes := make([]*Node, len(cats))
	for i := range cats {
		nodes[i] = &Node{Category: cats[i], Children: []*Node{}}
		forest.byID[cats[i].ID] = nodes[i]
	}
	for i, p := range parent {
		if p == noParent {
			forest.Roots = append(forest.Roots, nodes[i])
			continue
		}
		nodes[p].Children = append(nodes[p].Children, nodes[i])
	}
	if forest.Roots == nil {
		forest.Roots = []*Node{}
	}

	for _, root := range forest.Roots {
		place(root, "", 1)
	}

	if o.canonical {
		sortNodes(forest.Roots)
	}
	forest.flat = make([]*Node, 0, len(nodes))
	for _, root := range forest.Roots {
		forest.flat = appendPreOrder(forest.flat, root)
	}
	if o.canonical {
		sort.SliceStable(forest.flat, func(i, j int) bool {
			return forest.flat[i].FullPath < forest.flat[j].FullPath
		})
	}

	return forest
}

// breakCycles follows parent links from every node. Reaching a node that is
// still on the current path closes a cycle; its earliest member is detached.
func breakCycles(cats []models.Category, parent []int) []string {
	var cycles []string
	state := make([]int, len(parent))
	path := make([]int, 0, 8)

	for start := range parent {
		if state[start] != unvisited {
			continue
		}
		path = path[:0]
		cur := start
		for cur != noParent && state[cur] == unvisited {
			state[cur] = onPath
			path = append(path, cur)
			cur = parent[cur]
		}
		if cur != noParent && state[cur] == onPath {
			k := 0
			for path[k] != cur {
				k++
			}
			first := path[k]
			for _, member := range path[k+1:] {
				if member < first {
					first = member
				}
			}
			parent[first] = noParent
			cycles = append(cycles, cats[first].ID)
		}
		for _, n := range path {
			state[n] = done
		}
	}
	return cycles
}

func place(n *Node, prefix string, level int) {
	if prefix == "" {
		n.FullPath = n.Category.Name
	} else {
		n.FullPath = prefix + PathSeparator + n.Category.Name
	}
	n.Level = level
	for _, child := range n.Children {
		place(child, n.FullPath, level+1)
	}
}

func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].FullPath < nodes[j].FullPath })
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}

func appendPreOrder(out []*Node, n *Node) []*Node {
	out = append(out, n)
	for _, child := range n.Children {
		out = appendPreOrder(out, child)
	}
	return out
}
