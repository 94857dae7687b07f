package progression

// Rewards granted on completion.
type Rewards struct {
	XP    int      `yaml:"xp" json:"xp"`
	Coins int      `yaml:"coins" json:"coins"`
	Items []string `yaml:"items,omitempty" json:"items,omitempty"`
}

// Dungeon is a multi-floor challenge. Floors is the progress total and
// CurrentFloor, when set, the progress counter.
type Dungeon struct {
	ID               string        `yaml:"id" json:"id"`
	Name             string        `yaml:"name" json:"name"`
	Description      string        `yaml:"description,omitempty" json:"description,omitempty"`
	Rank             Rank          `yaml:"rank" json:"rank"`
	Type             DungeonType   `yaml:"type" json:"type"`
	Floors           int           `yaml:"floors" json:"floors"`
	CurrentFloor     *int          `yaml:"current_floor,omitempty" json:"current_floor,omitempty"`
	RecommendedLevel int           `yaml:"recommended_level" json:"recommended_level"`
	MaxPartySize     int           `yaml:"max_party_size,omitempty" json:"max_party_size,omitempty"`
	Participants     int           `yaml:"participants,omitempty" json:"participants,omitempty"`
	Rewards          Rewards       `yaml:"rewards" json:"rewards"`
	Cooldown         string        `yaml:"cooldown,omitempty" json:"cooldown,omitempty"`
	Status           DungeonStatus `yaml:"status,omitempty" json:"status,omitempty"`
	Difficulty       Difficulty    `yaml:"difficulty" json:"difficulty"`
	HasBoss          bool          `yaml:"has_boss,omitempty" json:"has_boss,omitempty"`
}

// EffectiveStatus returns Status, or DungeonAvailable when unset.
func (d Dungeon) EffectiveStatus() DungeonStatus {
	if d.Status == "" {
		return DungeonAvailable
	}
	return d.Status
}

// IsActionable reports whether the dungeon can be entered. The status decides
// alone; progress counters are ignored.
func (d Dungeon) IsActionable() bool {
	return d.EffectiveStatus().Actionable()
}

// Progress returns the floor counters. tracked is false when the dungeon has
// no current floor or no floors.
func (d Dungeon) Progress() (current, total int, tracked bool) {
	if d.CurrentFloor == nil || d.Floors <= 0 {
		return 0, max(d.Floors, 0), false
	}
	total = d.Floors
	if d.EffectiveStatus() == DungeonCompleted {
		return total, total, true
	}
	return clampInt(*d.CurrentFloor, 0, total), total, true
}

// PercentComplete is the floor progress in [0, 100]. Completed dungeons report
// 100 even without a floor counter.
func (d Dungeon) PercentComplete() float64 {
	if d.EffectiveStatus() == DungeonCompleted {
		return 100
	}
	current, total, tracked := d.Progress()
	if !tracked {
		return 0
	}
	return PercentComplete(float64(current), float64(total))
}

// Normalize clamps the floor counter into [0, Floors] and pins it to Floors
// for completed dungeons.
func (d *Dungeon) Normalize() {
	d.Floors = max(d.Floors, 0)
	if d.CurrentFloor == nil {
		return
	}
	current, _, _ := d.Progress()
	d.CurrentFloor = &current
}

// Quest is a repeatable or one-off task.
type Quest struct {
	ID          string      `yaml:"id" json:"id"`
	Title       string      `yaml:"title" json:"title"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Rank        Rank        `yaml:"rank" json:"rank"`
	XPReward    int         `yaml:"xp_reward" json:"xp_reward"`
	CoinReward  int         `yaml:"coin_reward,omitempty" json:"coin_reward,omitempty"`
	Type        QuestType   `yaml:"type" json:"type"`
	Difficulty  Difficulty  `yaml:"difficulty" json:"difficulty"`
	Current     *int        `yaml:"progress,omitempty" json:"progress,omitempty"`
	Total       *int        `yaml:"total,omitempty" json:"total,omitempty"`
	TimeLimit   string      `yaml:"time_limit,omitempty" json:"time_limit,omitempty"`
	Status      QuestStatus `yaml:"status,omitempty" json:"status,omitempty"`
	// Completed is the legacy completion flag, honoured when Status is unset.
	Completed bool `yaml:"is_completed,omitempty" json:"is_completed,omitempty"`
}

// EffectiveStatus returns Status; when unset, QuestCompleted if the legacy flag
// is set and QuestNotStarted otherwise.
func (q Quest) EffectiveStatus() QuestStatus {
	switch {
	case q.Status != "":
		return q.Status
	case q.Completed:
		return QuestCompleted
	default:
		return QuestNotStarted
	}
}

// IsActionable reports whether the quest can be worked on.
func (q Quest) IsActionable() bool {
	return q.EffectiveStatus().Actionable()
}

// Progress returns the counters. tracked is false unless both are set and
// the total is positive.
func (q Quest) Progress() (current, total int, tracked bool) {
	if q.Current == nil || q.Total == nil || *q.Total <= 0 {
		return 0, 0, false
	}
	total = *q.Total
	if q.EffectiveStatus() == QuestCompleted {
		return total, total, true
	}
	return clampInt(*q.Current, 0, total), total, true
}

// PercentComplete is the quest progress in [0, 100].
func (q Quest) PercentComplete() float64 {
	current, total, tracked := q.Progress()
	if !tracked {
		if q.EffectiveStatus() == QuestCompleted {
			return 100
		}
		return 0
	}
	return PercentComplete(float64(current), float64(total))
}

// Normalize clamps the counters so that 0 <= current <= total and a completed
// quest has current == total.
func (q *Quest) Normalize() {
	if q.Total != nil && *q.Total < 0 {
		zero := 0
		q.Total = &zero
	}
	if q.Current == nil {
		return
	}
	current, _, tracked := q.Progress()
	if !tracked {
		current = max(*q.Current, 0)
		if q.Total != nil {
			current = min(current, *q.Total)
		}
	}
	q.Current = &current
}
