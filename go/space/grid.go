// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package space provides a rectangular grid in which each cell may host any
// number of agents.
package space

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is reported for positions outside a bounded grid.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrAlreadyPlaced is reported when placing an agent a second time.
	ErrAlreadyPlaced = errors.New("agent already placed")
	// ErrNotPlaced is reported when moving or removing an unknown agent.
	ErrNotPlaced = errors.New("agent not placed")
)

// OutOfBoundsError carries the offending position of an ErrOutOfBounds.
type OutOfBoundsError struct {
	Pos    Pos
	Width  int
	Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%v: %v not in %dx%d grid", ErrOutOfBounds, e.Pos, e.Width, e.Height)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// Pos is a cell coordinate. X is the column, Y is the row.
type Pos struct {
	X, Y int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Boundary defines how coordinates beyond the grid's edges are handled.
type Boundary int

const (
	// Wrap connects opposite edges, turning the grid into a torus.
	Wrap Boundary = iota
	// Clip treats coordinates beyond the edges as invalid.
	Clip
)

func (b Boundary) String() string {
	switch b {
	case Wrap:
		return "wrap"
	case Clip:
		return "clip"
	}
	return fmt.Sprintf("Boundary(%d)", int(b))
}

// Locatable is the constraint for agents hosted by a MultiGrid. The grid
// keeps the agent's position in sync with the cell listing it.
type Locatable interface {
	comparable
	Pos() Pos
	SetPos(Pos)
}

// MultiGrid is a width x height grid of cells, each holding an ordered list
// of agents. An agent is listed in exactly one cell, the one matching its
// position. A MultiGrid is not safe for concurrent use.
type MultiGrid[T Locatable] struct {
	width    int
	height   int
	boundary Boundary
	cells    [][]T
	placed   map[T]struct{}
}

// NewMultiGrid creates an empty grid with the given dimensions.
func NewMultiGrid[T Locatable](width, height int, boundary Boundary) (*MultiGrid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", width, height)
	}
	if boundary != Wrap && boundary != Clip {
		return nil, fmt.Errorf("invalid boundary %v", boundary)
	}
	return &MultiGrid[T]{
		width:    width,
		height:   height,
		boundary: boundary,
		cells:    make([][]T, width*height),
		placed:   map[T]struct{}{},
	}, nil
}

func (g *MultiGrid[T]) Width() int {
	return g.width
}

func (g *MultiGrid[T]) Height() int {
	return g.height
}

func (g *MultiGrid[T]) Boundary() Boundary {
	return g.boundary
}

// Len returns the number of placed agents.
func (g *MultiGrid[T]) Len() int {
	return len(g.placed)
}

// Contains reports whether the position lies within the grid's edges.
func (g *MultiGrid[T]) Contains(pos Pos) bool {
	return 0 <= pos.X && pos.X < g.width && 0 <= pos.Y && pos.Y < g.height
}

// Normalize maps the position into the grid. Under Wrap coordinates are
// taken modulo the grid size, under Clip positions outside fail.
func (g *MultiGrid[T]) Normalize(pos Pos) (Pos, error) {
	if g.boundary == Wrap {
		return Pos{X: mod(pos.X, g.width), Y: mod(pos.Y, g.height)}, nil
	}
	if !g.Contains(pos) {
		return pos, &OutOfBoundsError{Pos: pos, Width: g.width, Height: g.height}
	}
	return pos, nil
}

// Neighborhood lists the Moore neighbourhood (radius 1) of the given cell,
// iterating dx and dy from -1 to 1. Duplicates produced by wrapping on small
// grids are dropped, keeping the first occurrence. The centre is excluded
// unless requested, also if it is reached by wrapping.
func (g *MultiGrid[T]) Neighborhood(pos Pos, includeCenter bool) []Pos {
	center, err := g.Normalize(pos)
	if err != nil {
		return nil
	}
	res := make([]Pos, 0, 9)
	seen := make(map[Pos]struct{}, 9)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			cur, err := g.Normalize(Pos{X: center.X + dx, Y: center.Y + dy})
			if err != nil {
				continue
			}
			if cur == center && !includeCenter {
				continue
			}
			if _, found := seen[cur]; found {
				continue
			}
			seen[cur] = struct{}{}
			res = append(res, cur)
		}
	}
	return res
}

// Occupants returns a copy of the agents in the given cell in the order they
// arrived. Positions outside a bounded grid have no occupants.
func (g *MultiGrid[T]) Occupants(pos Pos) []T {
	pos, err := g.Normalize(pos)
	if err != nil {
		return nil
	}
	cell := g.cells[g.index(pos)]
	if len(cell) == 0 {
		return nil
	}
	res := make([]T, len(cell))
	copy(res, cell)
	return res
}

func (g *MultiGrid[T]) IsCellEmpty(pos Pos) bool {
	pos, err := g.Normalize(pos)
	if err != nil {
		return true
	}
	return len(g.cells[g.index(pos)]) == 0
}

// Place adds an agent to the given cell and updates its position.
func (g *MultiGrid[T]) Place(agent T, pos Pos) error {
	if _, found := g.placed[agent]; found {
		return ErrAlreadyPlaced
	}
	pos, err := g.Normalize(pos)
	if err != nil {
		return err
	}
	g.add(agent, pos)
	g.placed[agent] = struct{}{}
	return nil
}

// Move relocates a placed agent to the given cell and updates its position.
// The agent is appended to the end of the target cell.
func (g *MultiGrid[T]) Move(agent T, pos Pos) error {
	if _, found := g.placed[agent]; !found {
		return ErrNotPlaced
	}
	pos, err := g.Normalize(pos)
	if err != nil {
		return err
	}
	g.remove(agent)
	g.add(agent, pos)
	return nil
}

// Remove takes a placed agent off the grid.
func (g *MultiGrid[T]) Remove(agent T) error {
	if _, found := g.placed[agent]; !found {
		return ErrNotPlaced
	}
	g.remove(agent)
	delete(g.placed, agent)
	return nil
}

// Validate checks that every placed agent is listed exactly once, in the cell
// matching its position, and that no other agents are listed.
func (g *MultiGrid[T]) Validate() error {
	listed := make(map[T]Pos, len(g.placed))
	for i, cell := range g.cells {
		pos := Pos{X: i / g.height, Y: i % g.height}
		for _, agent := range cell {
			if prev, found := listed[agent]; found {
				return fmt.Errorf("agent listed in %v and %v", prev, pos)
			}
			listed[agent] = pos
			if _, found := g.placed[agent]; !found {
				return fmt.Errorf("unplaced agent listed in %v", pos)
			}
			if got := agent.Pos(); got != pos {
				return fmt.Errorf("agent at %v listed in %v", got, pos)
			}
		}
	}
	if want, got := len(g.placed), len(listed); want != got {
		return fmt.Errorf("%d agents placed, but %d listed", want, got)
	}
	return nil
}

func (g *MultiGrid[T]) index(pos Pos) int {
	return pos.X*g.height + pos.Y
}

func (g *MultiGrid[T]) add(agent T, pos Pos) {
	i := g.index(pos)
	g.cells[i] = append(g.cells[i], agent)
	agent.SetPos(pos)
}

func (g *MultiGrid[T]) remove(agent T) {
	i := g.index(agent.Pos())
	cell := g.cells[i]
	for j, cur := range cell {
		if cur == agent {
			g.cells[i] = append(cell[:j], cell[j+1:]...)
			return
		}
	}
}

func mod(a, n int) int {
	res := a % n
	if res < 0 {
		res += n
	}
	return res
}
