package model

import "strings"

// PlayerCollection is an id-keyed set of players that remembers insertion order.
// Re-inserting an existing id replaces the player in place.
type PlayerCollection struct {
	slots   []*Player // insertion order; nil marks a deleted player
	index   map[string]int
	deleted int
}

// NewPlayerCollection returns an empty collection.
func NewPlayerCollection() *PlayerCollection {
	return &PlayerCollection{index: make(map[string]int)}
}

// Put inserts p, or replaces the player with the same id keeping its position.
func (c *PlayerCollection) Put(p *Player) {
	if i, ok := c.index[p.ID]; ok {
		c.slots[i] = p
		return
	}
	c.index[p.ID] = len(c.slots)
	c.slots = append(c.slots, p)
}

// Get returns the player with the given id.
func (c *PlayerCollection) Get(id string) (*Player, bool) {
	i, ok := c.index[id]
	if !ok {
		return nil, false
	}
	return c.slots[i], true
}

// Delete removes the player with the given id and reports whether it existed.
func (c *PlayerCollection) Delete(id string) bool {
	i, ok := c.index[id]
	if !ok {
		return false
	}
	c.slots[i] = nil
	delete(c.index, id)
	c.deleted++
	if c.deleted > len(c.slots)/2 {
		c.compact()
	}
	return true
}

func (c *PlayerCollection) compact() {
	live := make([]*Player, 0, len(c.index))
	for _, p := range c.slots {
		if p == nil {
			continue
		}
		c.index[p.ID] = len(live)
		live = append(live, p)
	}
	c.slots = live
	c.deleted = 0
}

// Len returns the number of players.
func (c *PlayerCollection) Len() int { return len(c.index) }

// All returns the players in insertion order.
func (c *PlayerCollection) All() []*Player {
	out := make([]*Player, 0, len(c.index))
	for _, p := range c.slots {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// Each calls fn for every player in insertion order. Deleting the current
// player from within fn is allowed.
func (c *PlayerCollection) Each(fn func(*Player)) {
	for _, p := range c.All() {
		fn(p)
	}
}

// SearchName returns players whose name contains q, case-insensitively.
func (c *PlayerCollection) SearchName(q string) []*Player {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}
	flat := strings.ReplaceAll(q, " ", "")
	var out []*Player
	for _, p := range c.All() {
		if strings.Contains(strings.ToLower(p.Name()), q) ||
			(p.SearchFullName != "" && strings.Contains(p.SearchFullName, flat)) {
			out = append(out, p)
		}
	}
	return out
}

// ByPosition returns players whose primary or fantasy positions include pos.
// Resolved positions take precedence once the filter has run.
func (c *PlayerCollection) ByPosition(pos Position) []*Player {
	var out []*Player
	for _, p := range c.All() {
		if p.ResolvedPosition != PosUnknown {
			if p.ResolvedPosition == pos {
				out = append(out, p)
			}
			continue
		}
		for _, cand := range p.Candidates() {
			if cand == pos {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// ByTeam returns players on the given NFL team abbreviation.
func (c *PlayerCollection) ByTeam(team string) []*Player {
	team = strings.ToUpper(strings.TrimSpace(team))
	var out []*Player
	for _, p := range c.All() {
		if strings.ToUpper(p.Team) == team {
			out = append(out, p)
		}
	}
	return out
}
