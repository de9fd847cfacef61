package physics

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vanderheijden86/glossgraph/pkg/model"
)

const (
	// DefaultNodeRadius is the visual radius shared by every node.
	DefaultNodeRadius = 8.0
	// DefaultSpawnJitter is the side of the square around the center in
	// which new nodes are placed.
	DefaultSpawnJitter = 400.0
	// minDistance floors pair distances so coincident nodes never divide by zero.
	minDistance = 1.0
)

// SimNode is the physical state of one visible term.
type SimNode struct {
	ID     string
	Pos    r2.Vec
	Vel    r2.Vec
	Radius float64
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithRand sets the random source used to place new nodes.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulation) {
		s.rng = rng
	}
}

// WithNodeRadius sets the radius given to new nodes.
func WithNodeRadius(r float64) Option {
	return func(s *Simulation) {
		if r > 0 {
			s.radius = r
		}
	}
}

// WithSpawnJitter sets the spawn square size around the center.
func WithSpawnJitter(j float64) Option {
	return func(s *Simulation) {
		if j >= 0 {
			s.jitter = j
		}
	}
}

// Simulation owns node positions and velocities. It is not safe for
// concurrent use; callers sequence Step against readers.
type Simulation struct {
	cfg    Config
	rng    *rand.Rand
	radius float64
	jitter float64

	nodes []SimNode
	index map[string]int
	// adj holds resolved edge targets per node, duplicates kept, absent ids dropped.
	adj [][]int

	dragged int
	scratch []r2.Vec
}

// New creates an empty simulation.
func New(cfg Config, opts ...Option) *Simulation {
	s := &Simulation{
		cfg:     cfg,
		radius:  DefaultNodeRadius,
		jitter:  DefaultSpawnJitter,
		index:   make(map[string]int),
		dragged: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return s
}

// Config returns the active constants.
func (s *Simulation) Config() Config { return s.cfg }

// SetConfig swaps the constants; node state is untouched.
func (s *Simulation) SetConfig(cfg Config) { s.cfg = cfg }

// SyncResult counts what a Sync did.
type SyncResult struct {
	Added, Kept, Dropped int
}

// Sync replaces the node set with one node per view. Nodes whose id was
// already present keep position and velocity; new ids spawn near center;
// ids no longer present are dropped. A drag on a dropped node is cleared.
func (s *Simulation) Sync(views []model.TermView, center r2.Vec) SyncResult {
	var res SyncResult
	draggedID := s.DraggedID()

	nodes := make([]SimNode, 0, len(views))
	index := make(map[string]int, len(views))
	for _, v := range views {
		if _, dup := index[v.ID]; dup {
			continue
		}
		if i, ok := s.index[v.ID]; ok {
			nodes = append(nodes, s.nodes[i])
			res.Kept++
		} else {
			nodes = append(nodes, SimNode{
				ID: v.ID,
				Pos: r2.Vec{
					X: center.X + (s.rng.Float64()-0.5)*s.jitter,
					Y: center.Y + (s.rng.Float64()-0.5)*s.jitter,
				},
				Radius: s.radius,
			})
			res.Added++
		}
		index[v.ID] = len(nodes) - 1
	}
	res.Dropped = len(s.nodes) - res.Kept

	adj := make([][]int, len(nodes))
	for _, v := range views {
		i := index[v.ID]
		if adj[i] != nil {
			continue
		}
		edges := make([]int, 0, len(v.Links)+len(v.AutoLinks))
		for _, id := range v.Edges() {
			if j, ok := index[id]; ok {
				edges = append(edges, j)
			}
		}
		adj[i] = edges
	}

	s.nodes, s.index, s.adj = nodes, index, adj
	s.dragged = -1
	if i, ok := index[draggedID]; ok {
		s.dragged = i
	}
	return res
}

// Len returns the node count.
func (s *Simulation) Len() int { return len(s.nodes) }

// Empty reports whether there is nothing to simulate.
func (s *Simulation) Empty() bool { return len(s.nodes) == 0 }

// Nodes returns a copy of the node state.
func (s *Simulation) Nodes() []SimNode {
	out := make([]SimNode, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Node returns the node with id.
func (s *Simulation) Node(id string) (SimNode, bool) {
	i, ok := s.index[id]
	if !ok {
		return SimNode{}, false
	}
	return s.nodes[i], true
}

// Positions returns every node position keyed by id.
func (s *Simulation) Positions() map[string]r2.Vec {
	out := make(map[string]r2.Vec, len(s.nodes))
	for _, n := range s.nodes {
		out[n.ID] = n.Pos
	}
	return out
}

// SetDragged marks id as held by the pointer. An unknown id clears the mark.
func (s *Simulation) SetDragged(id string) {
	s.dragged = -1
	if i, ok := s.index[id]; ok {
		s.dragged = i
	}
}

// ClearDragged releases the held node.
func (s *Simulation) ClearDragged() { s.dragged = -1 }

// DraggedID returns the held node id or "".
func (s *Simulation) DraggedID() string {
	if s.dragged < 0 || s.dragged >= len(s.nodes) {
		return ""
	}
	return s.nodes[s.dragged].ID
}

// MoveTo places node id at p and zeroes its velocity.
func (s *Simulation) MoveTo(id string, p r2.Vec) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.nodes[i].Pos = p
	s.nodes[i].Vel = r2.Vec{}
	return true
}

// Step advances every node except the dragged one by one tick. All forces
// are computed from the positions as they were when Step was entered; the
// positions are only written after every velocity is known.
func (s *Simulation) Step(center r2.Vec) {
	n := len(s.nodes)
	if n == 0 {
		return
	}
	if cap(s.scratch) < n {
		s.scratch = make([]r2.Vec, n)
	}
	vel := s.scratch[:n]
	cfg := s.cfg

	for i := range s.nodes {
		if i == s.dragged {
			vel[i] = s.nodes[i].Vel
			continue
		}
		p := s.nodes[i].Pos
		v := s.nodes[i].Vel

		// center gravity
		v = r2.Add(v, r2.Scale(cfg.CenterForce, r2.Sub(center, p)))

		// pairwise repulsion
		for j := range s.nodes {
			if j == i {
				continue
			}
			d := r2.Sub(p, s.nodes[j].Pos)
			r := math.Max(r2.Norm(d), minDistance)
			v = r2.Add(v, r2.Scale(cfg.Repulsion/(r*r*r), d))
		}

		// link springs
		for _, j := range s.adj[i] {
			d := r2.Sub(s.nodes[j].Pos, p)
			r := math.Max(r2.Norm(d), minDistance)
			v = r2.Add(v, r2.Scale((r-cfg.LinkDistance)*cfg.LinkStrength/r, d))
		}

		vel[i] = r2.Scale(cfg.Damping, v)
	}

	for i := range s.nodes {
		if i == s.dragged {
			continue
		}
		s.nodes[i].Vel = vel[i]
		s.nodes[i].Pos = r2.Add(s.nodes[i].Pos, vel[i])
	}
}

// TotalSpeed is the sum of |velocity| over all nodes. It falls toward zero
// as the layout settles.
func (s *Simulation) TotalSpeed() float64 {
	var sum float64
	for _, n := range s.nodes {
		sum += r2.Norm(n.Vel)
	}
	return sum
}

// Settle runs up to maxTicks steps, stopping early once TotalSpeed drops
// below eps. It returns the number of ticks run.
func (s *Simulation) Settle(center r2.Vec, maxTicks int, eps float64) int {
	for t := 0; t < maxTicks; t++ {
		if s.Empty() {
			return t
		}
		s.Step(center)
		if s.TotalSpeed() < eps {
			return t + 1
		}
	}
	return maxTicks
}
