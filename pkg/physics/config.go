// Package physics advances the force-directed layout: center gravity,
// pairwise inverse-square repulsion, spring attraction along links, damping
// and explicit Euler integration, one unit timestep per frame.
package physics

import (
	"errors"
	"fmt"
)

// Config holds the tunable force constants. None of them are derived. Within
// the documented safe ranges, graphs whose links run both ways settle and no
// layout overlaps. Springs act only on the linking node, so a graph of
// one-way links keeps a slow drift instead of coming to rest.
type Config struct {
	// Damping multiplies velocity every tick. Safe range 0.70-0.95.
	Damping float64 `yaml:"damping" json:"damping"`
	// CenterForce scales the pull toward the canvas center. Safe range 0.0001-0.001.
	CenterForce float64 `yaml:"center_force" json:"centerForce"`
	// Repulsion is the inverse-square push between every pair. Safe range 1000-5000.
	Repulsion float64 `yaml:"repulsion" json:"repulsion"`
	// LinkDistance is the spring rest length. Safe range 100-250.
	LinkDistance float64 `yaml:"link_distance" json:"linkDistance"`
	// LinkStrength is the spring constant. Safe range 0.003-0.015.
	LinkStrength float64 `yaml:"link_strength" json:"linkStrength"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		Damping:      0.80,
		CenterForce:  0.0003,
		Repulsion:    2000,
		LinkDistance: 150,
		LinkStrength: 0.008,
	}
}

// Range is an inclusive bound.
type Range struct {
	Min, Max float64
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// SafeRanges documents where each constant behaves well.
var SafeRanges = struct {
	Damping, CenterForce, Repulsion, LinkDistance, LinkStrength Range
}{
	Damping:      Range{0.70, 0.95},
	CenterForce:  Range{0.0001, 0.001},
	Repulsion:    Range{1000, 5000},
	LinkDistance: Range{100, 250},
	LinkStrength: Range{0.003, 0.015},
}

// ErrOutOfRange marks a constant outside its safe range.
var ErrOutOfRange = errors.New("outside safe range")

// Validate reports every constant that lies outside its safe range. The
// simulation still runs with such values; callers decide whether to warn.
func (c Config) Validate() error {
	var errs []error
	check := func(name string, v float64, r Range) {
		if !r.Contains(v) {
			errs = append(errs, fmt.Errorf("%s=%g %w [%g, %g]", name, v, ErrOutOfRange, r.Min, r.Max))
		}
	}
	check("damping", c.Damping, SafeRanges.Damping)
	check("center_force", c.CenterForce, SafeRanges.CenterForce)
	check("repulsion", c.Repulsion, SafeRanges.Repulsion)
	check("link_distance", c.LinkDistance, SafeRanges.LinkDistance)
	check("link_strength", c.LinkStrength, SafeRanges.LinkStrength)
	return errors.Join(errs...)
}

// Merge returns c with every zero field replaced by the default.
func (c Config) Merge() Config {
	d := DefaultConfig()
	if c.Damping == 0 {
		c.Damping = d.Damping
	}
	if c.CenterForce == 0 {
		c.CenterForce = d.CenterForce
	}
	if c.Repulsion == 0 {
		c.Repulsion = d.Repulsion
	}
	if c.LinkDistance == 0 {
		c.LinkDistance = d.LinkDistance
	}
	if c.LinkStrength == 0 {
		c.LinkStrength = d.LinkStrength
	}
	return c
}
