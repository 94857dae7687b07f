package progression

// Board summarizes a catalog for one player.
type Board struct {
	Level int
	Rank  Rank

	Quests           int
	QuestsActionable int
	QuestsCompleted  int
	// QuestProgress is the mean completion of quests with tracked progress.
	QuestProgress float64

	Dungeons           int
	DungeonsActionable int
	DungeonsCompleted  int
	DungeonsBlocked    int // locked or cooling down

	// PendingXP is the reward still available from actionable quests and dungeons.
	PendingXP int
	// Recommended lists actionable dungeons whose recommended level the player meets.
	Recommended []string
}

// Summarize builds the board for a player at level.
func Summarize(level int, c Catalog) Board {
	b := Board{
		Level:    max(level, 0),
		Rank:     RankFromLevel(level),
		Quests:   len(c.Quests),
		Dungeons: len(c.Dungeons),
	}

	var tracked int
	var progress float64
	for _, q := range c.Quests {
		switch {
		case q.EffectiveStatus() == QuestCompleted:
			b.QuestsCompleted++
		case q.IsActionable():
			b.QuestsActionable++
			b.PendingXP += q.XPReward
		}
		if _, _, ok := q.Progress(); ok {
			tracked++
			progress += q.PercentComplete()
		}
	}
	if tracked > 0 {
		b.QuestProgress = progress / float64(tracked)
	}

	for _, d := range c.Dungeons {
		switch d.EffectiveStatus() {
		case DungeonCompleted:
			b.DungeonsCompleted++
		case DungeonLocked, DungeonCooldown:
			b.DungeonsBlocked++
		}
		if !d.IsActionable() {
			continue
		}
		b.DungeonsActionable++
		b.PendingXP += d.Rewards.XP
		if b.Level >= d.RecommendedLevel {
			b.Recommended = append(b.Recommended, d.ID)
		}
	}
	return b
}
