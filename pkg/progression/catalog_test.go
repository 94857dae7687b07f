package progression_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/questkit/pkg/progression"
)

const sampleCatalog = `
quests:
  - id: pushups
    title: Morning Push-ups
    rank: E
    xp_reward: 50
    type: daily
    difficulty: easy
    progress: 30
    total: 50
  - id: marathon
    title: Marathon Prep
    rank: A-Rank
    xp_reward: 500
    type: special
    difficulty: extreme
    progress: 12
    total: 10
  - id: plank
    title: Plank Week
    rank: C
    xp_reward: 120
    type: weekly
    difficulty: medium
    is_completed: true
dungeons:
  - id: cardio-cave
    name: Cardio Cave
    rank: D
    type: solo
    floors: 5
    current_floor: 2
    recommended_level: 10
    status: in_progress
    difficulty: medium
    rewards: {xp: 200, coins: 20}
  - id: iron-tower
    name: Iron Tower
    rank: S
    type: guild
    floors: 10
    recommended_level: 90
    status: locked
    difficulty: nightmare
    has_boss: true
    rewards: {xp: 5000, coins: 900, items: [crown]}
  - id: yoga-garden
    name: Yoga Garden
    rank: E
    type: party
    floors: 3
    recommended_level: 1
    difficulty: easy
    rewards: {xp: 80, coins: 5}
  - id: spin-pit
    name: Spin Pit
    rank: B
    type: solo
    floors: 4
    recommended_level: 40
    status: cooldown
    cooldown: 2h
    difficulty: hard
    rewards: {xp: 300, coins: 30}
`

func TestParseCatalog(t *testing.T) {
	t.Parallel()

	c, err := progression.ParseCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, c.Quests, 3)
	require.Len(t, c.Dungeons, 4)

	assert.Equal(t, progression.RankA, c.Quests[1].Rank)
	assert.Equal(t, 10, *c.Quests[1].Current, "progress is clamped to total")
	assert.Equal(t, progression.QuestCompleted, c.Quests[2].EffectiveStatus())

	assert.Equal(t, progression.DungeonAvailable, c.Dungeons[2].EffectiveStatus())
	assert.Equal(t, []string{"crown"}, c.Dungeons[1].Rewards.Items)

	ids := func(ds []progression.Dungeon) []string {
		var out []string
		for _, d := range ds {
			out = append(out, d.ID)
		}
		return out
	}
	assert.Equal(t, []string{"cardio-cave", "yoga-garden"}, ids(c.ActionableDungeons()))
	assert.Len(t, c.ActionableQuests(), 2)
}

func TestParseCatalog_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"unknown status":     "dungeons:\n  - {id: a, rank: E, status: open}\n",
		"unknown rank":       "quests:\n  - {id: a, rank: Z}\n",
		"numeric rank":       "quests:\n  - {id: a, rank: 9}\n",
		"unknown difficulty": "quests:\n  - {id: a, rank: E, difficulty: trivial}\n",
		"unknown field":      "quests:\n  - {id: a, rank: E, color: red}\n",
		"missing id":         "quests:\n  - {rank: E}\n",
		"duplicate id":       "dungeons:\n  - {id: a, rank: E}\n  - {id: a, rank: D}\n",
		"bad yaml":           "quests: [\n",
	}
	for name, doc := range tests {
		_, err := progression.ParseCatalog(strings.NewReader(doc))
		assert.ErrorIs(t, err, progression.ErrInvalidCatalog, name)
	}
}

func TestParseCatalog_Empty(t *testing.T) {
	t.Parallel()

	c, err := progression.ParseCatalog(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.Quests)
	assert.Empty(t, c.Dungeons)
}

func TestLoadCatalog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	c, err := progression.LoadCatalog(path)
	require.NoError(t, err)
	assert.Len(t, c.Dungeons, 4)

	_, err = progression.LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCatalog_EncodeRoundTrip(t *testing.T) {
	t.Parallel()

	c, err := progression.ParseCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf))
	assert.Contains(t, buf.String(), "rank: S")

	again, err := progression.ParseCatalog(&buf)
	require.NoError(t, err)
	assert.Equal(t, c, again)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	c, err := progression.ParseCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	b := progression.Summarize(12, c)
	assert.Equal(t, progression.RankD, b.Rank)
	assert.Equal(t, 3, b.Quests)
	assert.Equal(t, 2, b.QuestsActionable)
	assert.Equal(t, 1, b.QuestsCompleted)
	// (60 + 100) / 2 over the two tracked quests.
	assert.InDelta(t, 80.0, b.QuestProgress, 0.001)

	assert.Equal(t, 4, b.Dungeons)
	assert.Equal(t, 2, b.DungeonsActionable)
	assert.Equal(t, 0, b.DungeonsCompleted)
	assert.Equal(t, 2, b.DungeonsBlocked)
	assert.Equal(t, 50+500+200+80, b.PendingXP)
	assert.Equal(t, []string{"cardio-cave", "yoga-garden"}, b.Recommended)

	low := progression.Summarize(-5, c)
	assert.Equal(t, 0, low.Level)
	assert.Equal(t, progression.RankE, low.Rank)
	assert.Equal(t, []string{"yoga-garden"}, low.Recommended)
}
