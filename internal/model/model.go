package model

import "strings"

// Position is a primary fantasy position a player can be valued at.
type Position int

const (
	PosUnknown Position = iota
	PosQB
	PosRB
	PosWR
	PosTE
	PosK
	PosDEF
	PosDL
	PosLB
	PosDB
)

// AllPositions lists every known position in display order.
var AllPositions = []Position{PosQB, PosRB, PosWR, PosTE, PosK, PosDEF, PosDL, PosLB, PosDB}

func (p Position) String() string {
	switch p {
	case PosQB:
		return "QB"
	case PosRB:
		return "RB"
	case PosWR:
		return "WR"
	case PosTE:
		return "TE"
	case PosK:
		return "K"
	case PosDEF:
		return "DEF"
	case PosDL:
		return "DL"
	case PosLB:
		return "LB"
	case PosDB:
		return "DB"
	default:
		return "?"
	}
}

// ParsePosition maps a Sleeper position label onto a Position. IDP sub-positions
// collapse into the DL/LB/DB groups Sleeper rosters them under.
func ParsePosition(s string) Position {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "QB":
		return PosQB
	case "RB":
		return PosRB
	case "WR":
		return PosWR
	case "TE":
		return PosTE
	case "K", "PK":
		return PosK
	case "DEF", "DST", "D/ST":
		return PosDEF
	case "DL", "DE", "DT", "NT", "IDL":
		return PosDL
	case "LB", "ILB", "OLB", "MLB":
		return PosLB
	case "DB", "CB", "S", "SS", "FS":
		return PosDB
	default:
		return PosUnknown
	}
}

// ---- Entities produced by the normalizer ----

// Valuation holds the derived draft metrics for a surviving player.
type Valuation struct {
	VORP      float64 // projection minus positional replacement median
	TeamShare float64 // projection / total median team projection
	StdDevs   float64 // VORP in units of positional std-dev
	RawValue  float64 // TeamShare * draft budget, in dollars
}

// Player is one entry of the Sleeper player catalog.
type Player struct {
	ID               string
	FirstName        string
	LastName         string
	FullName         string
	SearchFullName   string
	Position         string // primary position label as sent upstream
	FantasyPositions []string
	Team             string
	Status           string
	InjuryStatus     string
	Active           bool
	Age              int
	YearsExp         int
	Number           int
	SearchRank       int

	// Populated by the pipeline, absent until then.
	Projection       *float64
	ResolvedPosition Position
	Valuation        *Valuation

	Extra Extra
}

// Name returns the best display name available for the player.
func (p *Player) Name() string {
	if p.FullName != "" {
		return p.FullName
	}
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name != "" {
		return name
	}
	if p.SearchFullName != "" {
		return p.SearchFullName
	}
	return p.ID
}

// SetProjection assigns the player's fantasy-point projection.
func (p *Player) SetProjection(v float64) {
	p.Projection = &v
}

// ProjectedPoints returns the projection, or 0 when none was assigned.
func (p *Player) ProjectedPoints() float64 {
	if p.Projection == nil {
		return 0
	}
	return *p.Projection
}

// Candidates returns the primary position followed by any additional fantasy
// positions, de-duplicated, in upstream order.
func (p *Player) Candidates() []Position {
	var out []Position
	seen := make(map[Position]bool)
	add := func(label string) {
		pos := ParsePosition(label)
		if pos == PosUnknown || seen[pos] {
			return
		}
		seen[pos] = true
		out = append(out, pos)
	}
	add(p.Position)
	for _, fp := range p.FantasyPositions {
		add(fp)
	}
	return out
}

// League holds the settings that drive scoring and roster construction.
type League struct {
	ID              string
	Name            string
	Season          string
	Sport           string
	Status          string
	ScoringSettings map[string]float64
	RosterPositions []string // one label per roster slot, repeats allowed
	TotalRosters    int
	DraftBudget     *float64 // dollars per team, when the league carries one
	DraftID         string

	Extra Extra
}

// DraftPick is a single pick (or auction win) from a Sleeper draft.
type DraftPick struct {
	PlayerID  string
	PickedBy  string // user id, may be empty
	RosterID  string
	Cost      *float64 // metadata.amount; nil for snake drafts or missing metadata
	Round     int
	DraftSlot int
	PickNo    int
	IsKeeper  bool
	DraftID   string

	Extra Extra
}

// User is a league member.
type User struct {
	ID          string
	Username    string
	DisplayName string
	Avatar      string

	Extra Extra
}

// Label returns the display name, falling back to username then id.
func (u User) Label() string {
	switch {
	case u.DisplayName != "":
		return u.DisplayName
	case u.Username != "":
		return u.Username
	default:
		return u.ID
	}
}

// Roster is one team's roster within a league.
type Roster struct {
	RosterID string
	OwnerID  string
	LeagueID string
	Players  []string
	Starters []string
	Reserve  []string

	Extra Extra
}

// Draft describes one draft of a league.
type Draft struct {
	ID       string
	LeagueID string
	Type     string // "auction", "snake", "linear"
	Status   string
	Season   string
	Budget   *float64 // settings.budget for auction drafts
	Rounds   int

	Extra Extra
}

// ---- Valuation snapshots ----

// PositionStat summarizes the replacement-level window for one position.
type PositionStat struct {
	Mean        float64
	Median      float64
	StdDev      float64 // population standard deviation
	Window      int     // configured window size
	Count       int     // players actually used (<= Window)
	Replacement float64 // projection of the last player inside the window
}

// PositionStats maps a position to its replacement-level statistics. A missing
// position means no statistics are available for it.
type PositionStats map[Position]PositionStat
