package roster

import "github.com/pable/go-draft-metrics/internal/model"

// FilterOptions controls which players survive filtering.
type FilterOptions struct {
	ActiveOnly bool // also drop players the catalog marks inactive
}

// FilterResult counts removals by reason.
type FilterResult struct {
	Kept        int
	Unrostered  int // no position the league can start
	Unprojected int // projection absent or zero
	Inactive    int
}

// Removed returns the total number of players removed.
func (r FilterResult) Removed() int {
	return r.Unrostered + r.Unprojected + r.Inactive
}

// Filter removes players the league cannot roster, players without a non-zero
// projection and, with ActiveOnly, inactive players. Survivors get their
// ResolvedPosition set. Each player is judged on its own, so the result does
// not depend on collection order.
func Filter(players *model.PlayerCollection, layout Layout, opts FilterOptions) FilterResult {
	var res FilterResult
	players.Each(func(p *model.Player) {
		pos, ok := layout.Resolve(p.Candidates())
		switch {
		case !ok:
			res.Unrostered++
		case p.Projection == nil || *p.Projection == 0:
			res.Unprojected++
		case opts.ActiveOnly && !p.Active:
			res.Inactive++
		default:
			p.ResolvedPosition = pos
			res.Kept++
			return
		}
		p.ResolvedPosition = model.PosUnknown
		players.Delete(p.ID)
	})
	return res
}
