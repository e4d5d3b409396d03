package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-draft-metrics/internal/model"
)

func sv(v float64) model.StatValue {
	return model.StatValue{Value: v, OK: true}
}

func TestProject_Intersection(t *testing.T) {
	stats := map[string]model.StatValue{
		"pass_yd": sv(4000),
		"pass_td": sv(30),
		"rush_yd": sv(200),
	}
	weights := map[string]float64{
		"pass_yd": 0.04,
		"pass_td": 4,
		"int":     -2,
	}
	assert.InDelta(t, 280.0, Project(stats, weights), 1e-9)
}

func TestProject_EmptyIntersection(t *testing.T) {
	stats := map[string]model.StatValue{"rec": sv(50)}
	assert.Equal(t, 0.0, Project(stats, map[string]float64{"pass_td": 4}))
	assert.Equal(t, 0.0, Project(nil, nil))
}

func TestProject_SkipsUnparsable(t *testing.T) {
	stats := map[string]model.StatValue{
		"rec":    {Raw: `"n/a"`},
		"rec_yd": sv(100),
	}
	weights := map[string]float64{"rec": 1, "rec_yd": 0.1}
	assert.InDelta(t, 10.0, Project(stats, weights), 1e-9)
}

func TestProject_Idempotent(t *testing.T) {
	stats := make(map[string]model.StatValue)
	weights := make(map[string]float64)
	for i, code := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"} {
		stats[code] = sv(0.1 * float64(i+1))
		weights[code] = 0.3 / float64(i+1)
	}
	first := Project(stats, weights)
	for i := 0; i < 50; i++ {
		require.Equal(t, first, Project(stats, weights))
	}
}

func TestSelectEntry(t *testing.T) {
	sp := &model.StatsProfile{
		PlayerID: "1",
		Entries: []model.StatsEntry{
			{Key: "0", Season: "2025", SeasonType: "regular", UpdatedAt: 5},
			{Key: "1", Season: "2025", SeasonType: "regular", UpdatedAt: 9},
			{Key: "2", Season: "2024", SeasonType: "regular", UpdatedAt: 50},
			{Key: "3", Season: "2025", SeasonType: "post", UpdatedAt: 99},
		},
	}

	e, ok := SelectEntry(sp, "2025", "regular")
	require.True(t, ok)
	assert.Equal(t, "1", e.Key)

	e, _ = SelectEntry(sp, "2023", "regular")
	assert.Equal(t, "3", e.Key, "no season match falls back to latest overall")

	e, _ = SelectEntry(sp, "", "")
	assert.Equal(t, "3", e.Key)

	_, ok = SelectEntry(&model.StatsProfile{}, "2025", "regular")
	assert.False(t, ok)
	_, ok = SelectEntry(nil, "2025", "regular")
	assert.False(t, ok)
}

func TestSelectEntry_TieBreaks(t *testing.T) {
	sp := &model.StatsProfile{Entries: []model.StatsEntry{
		{Key: "0", LastModified: 7},
		{Key: "2", LastModified: 7},
		{Key: "1", LastModified: 7},
	}}
	e, _ := SelectEntry(sp, "", "")
	assert.Equal(t, "2", e.Key, "equal timestamps fall back to the highest index key")
}

func TestProjectProfile(t *testing.T) {
	sp := &model.StatsProfile{Entries: []model.StatsEntry{
		{Key: "0", Season: "2025", Stats: map[string]model.StatValue{"rec": sv(80), "rec_yd": sv(1000)}},
	}}
	pts, ok := ProjectProfile(sp, map[string]float64{"rec": 1, "rec_yd": 0.1}, "2025", "")
	require.True(t, ok)
	assert.InDelta(t, 180.0, pts, 1e-9)
}
