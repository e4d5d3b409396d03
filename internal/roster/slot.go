// Package roster models league roster slots and filters the player pool down
// to players a league can actually roster.
package roster

import (
	"strings"

	"github.com/pable/go-draft-metrics/internal/model"
)

// Slot is one roster slot kind.
type Slot int

const (
	SlotUnknown Slot = iota
	SlotQB
	SlotRB
	SlotWR
	SlotTE
	SlotK
	SlotDEF
	SlotDL
	SlotLB
	SlotDB
	SlotFlex      // RB/WR/TE
	SlotSuperFlex // QB/RB/WR/TE
	SlotRecFlex   // WR/TE
	SlotWRRBFlex  // WR/RB
	SlotIDPFlex   // DL/LB/DB
	SlotBench
	SlotIR
	SlotTaxi
)

var slotNames = map[Slot]string{
	SlotQB:        "QB",
	SlotRB:        "RB",
	SlotWR:        "WR",
	SlotTE:        "TE",
	SlotK:         "K",
	SlotDEF:       "DEF",
	SlotDL:        "DL",
	SlotLB:        "LB",
	SlotDB:        "DB",
	SlotFlex:      "FLEX",
	SlotSuperFlex: "SUPER_FLEX",
	SlotRecFlex:   "REC_FLEX",
	SlotWRRBFlex:  "WRRB_FLEX",
	SlotIDPFlex:   "IDP_FLEX",
	SlotBench:     "BN",
	SlotIR:        "IR",
	SlotTaxi:      "TAXI",
}

func (s Slot) String() string {
	if n, ok := slotNames[s]; ok {
		return n
	}
	return "?"
}

// ParseSlot maps a Sleeper roster_positions label to a Slot.
func ParseSlot(label string) Slot {
	l := strings.ToUpper(strings.TrimSpace(label))
	switch l {
	case "WRRB_FLEX", "WR_RB_FLEX", "RB_WR_FLEX":
		return SlotWRRBFlex
	case "SUPERFLEX", "SUPER_FLEX", "OP":
		return SlotSuperFlex
	case "BN", "BENCH":
		return SlotBench
	case "IR", "RESERVE":
		return SlotIR
	}
	for s, n := range slotNames {
		if n == l {
			return s
		}
	}
	if pos := model.ParsePosition(l); pos != model.PosUnknown {
		return dedicatedSlot[pos]
	}
	return SlotUnknown
}

var dedicatedSlot = map[model.Position]Slot{
	model.PosQB:  SlotQB,
	model.PosRB:  SlotRB,
	model.PosWR:  SlotWR,
	model.PosTE:  SlotTE,
	model.PosK:   SlotK,
	model.PosDEF: SlotDEF,
	model.PosDL:  SlotDL,
	model.PosLB:  SlotLB,
	model.PosDB:  SlotDB,
}

// Dedicated returns the single position a slot is reserved for.
func (s Slot) Dedicated() (model.Position, bool) {
	for pos, slot := range dedicatedSlot {
		if slot == s {
			return pos, true
		}
	}
	return model.PosUnknown, false
}

// IsReserve reports whether the slot holds non-starters.
func (s Slot) IsReserve() bool {
	return s == SlotBench || s == SlotIR || s == SlotTaxi
}

// Accepts reports whether a player at pos may start in the slot. Reserve slots
// accept anyone but never define a rostered position.
func (s Slot) Accepts(pos model.Position) bool {
	if pos == model.PosUnknown {
		return false
	}
	if d, ok := s.Dedicated(); ok {
		return d == pos
	}
	switch s {
	case SlotFlex:
		return pos == model.PosRB || pos == model.PosWR || pos == model.PosTE
	case SlotSuperFlex:
		return pos == model.PosQB || pos == model.PosRB || pos == model.PosWR || pos == model.PosTE
	case SlotRecFlex:
		return pos == model.PosWR || pos == model.PosTE
	case SlotWRRBFlex:
		return pos == model.PosWR || pos == model.PosRB
	case SlotIDPFlex:
		return pos == model.PosDL || pos == model.PosLB || pos == model.PosDB
	case SlotBench, SlotIR, SlotTaxi:
		return true
	default:
		return false
	}
}

// Layout is a parsed roster_positions list.
type Layout struct {
	Slots     []Slot
	dedicated map[model.Position]int
}

// ParseLayout parses every label of a league's roster_positions.
func ParseLayout(labels []string) Layout {
	l := Layout{
		Slots:     make([]Slot, 0, len(labels)),
		dedicated: make(map[model.Position]int),
	}
	for _, label := range labels {
		s := ParseSlot(label)
		l.Slots = append(l.Slots, s)
		if pos, ok := s.Dedicated(); ok {
			l.dedicated[pos]++
		}
	}
	return l
}

// SlotCounts returns the number of dedicated slots per position. Flex and
// reserve slots are not counted.
func (l Layout) SlotCounts() map[model.Position]int {
	out := make(map[model.Position]int, len(l.dedicated))
	for pos, n := range l.dedicated {
		out[pos] = n
	}
	return out
}

// Resolve picks the position a player is valued at: the first candidate with
// a dedicated slot, else the first candidate a starting flex slot accepts.
func (l Layout) Resolve(candidates []model.Position) (model.Position, bool) {
	for _, c := range candidates {
		if l.dedicated[c] > 0 {
			return c, true
		}
	}
	for _, c := range candidates {
		for _, s := range l.Slots {
			if !s.IsReserve() && s.Accepts(c) {
				return c, true
			}
		}
	}
	return model.PosUnknown, false
}
