package progression

import "fmt"

// DungeonStatus is the lifecycle state of a dungeon.
type DungeonStatus string

const (
	DungeonAvailable  DungeonStatus = "available"
	DungeonInProgress DungeonStatus = "in_progress"
	DungeonCompleted  DungeonStatus = "completed"
	DungeonLocked     DungeonStatus = "locked"
	DungeonCooldown   DungeonStatus = "cooldown"
)

// Valid reports whether s is a known dungeon status. Empty is not valid.
func (s DungeonStatus) Valid() bool {
	switch s {
	case DungeonAvailable, DungeonInProgress, DungeonCompleted, DungeonLocked, DungeonCooldown:
		return true
	}
	return false
}

// Actionable reports whether a dungeon in this status accepts interaction.
func (s DungeonStatus) Actionable() bool {
	return s == DungeonAvailable || s == DungeonInProgress
}

// UnmarshalText rejects unknown statuses. Empty input leaves the status unset.
func (s *DungeonStatus) UnmarshalText(b []byte) error {
	v := DungeonStatus(b)
	if v != "" && !v.Valid() {
		return fmt.Errorf("%w: dungeon %q", ErrUnknownStatus, string(b))
	}
	*s = v
	return nil
}

// QuestStatus is the lifecycle state of a quest.
type QuestStatus string

const (
	QuestNotStarted QuestStatus = "not-started"
	QuestInProgress QuestStatus = "in-progress"
	QuestCompleted  QuestStatus = "completed"
)

// Valid reports whether s is a known quest status. Empty is not valid.
func (s QuestStatus) Valid() bool {
	switch s {
	case QuestNotStarted, QuestInProgress, QuestCompleted:
		return true
	}
	return false
}

// Actionable reports whether a quest in this status accepts interaction.
func (s QuestStatus) Actionable() bool {
	return s == QuestNotStarted || s == QuestInProgress
}

// UnmarshalText rejects unknown statuses. Empty input leaves the status unset.
func (s *QuestStatus) UnmarshalText(b []byte) error {
	v := QuestStatus(b)
	if v != "" && !v.Valid() {
		return fmt.Errorf("%w: quest %q", ErrUnknownStatus, string(b))
	}
	*s = v
	return nil
}

// Difficulty grades quests and dungeons.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "easy"
	DifficultyMedium    Difficulty = "medium"
	DifficultyHard      Difficulty = "hard"
	DifficultyExtreme   Difficulty = "extreme"
	DifficultyNightmare Difficulty = "nightmare"
)

// MaxStars is the number of stars shown for the hardest difficulty.
const MaxStars = 5

// Stars returns the 1..5 star rating, 0 for unknown values.
func (d Difficulty) Stars() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	case DifficultyExtreme:
		return 4
	case DifficultyNightmare:
		return 5
	}
	return 0
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return d.Stars() > 0
}

// UnmarshalText rejects unknown difficulties.
func (d *Difficulty) UnmarshalText(b []byte) error {
	v := Difficulty(b)
	if v != "" && !v.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDifficulty, string(b))
	}
	*d = v
	return nil
}

// QuestType is how often a quest resets.
type QuestType string

const (
	QuestDaily   QuestType = "daily"
	QuestWeekly  QuestType = "weekly"
	QuestSpecial QuestType = "special"
)

// DungeonType is the party format of a dungeon.
type DungeonType string

const (
	DungeonSolo  DungeonType = "solo"
	DungeonParty DungeonType = "party"
	DungeonGuild DungeonType = "guild"
)
