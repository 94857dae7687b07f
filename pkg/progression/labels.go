package progression

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var wordSeparators = strings.NewReplacer("_", " ", "-", " ")

// Humanize turns an identifier such as "very_active" or "not-started" into
// "Very Active".
func Humanize(s string) string {
	return cases.Title(language.English).String(wordSeparators.Replace(s))
}

// Badge returns the upper-case badge text for an identifier, e.g.
// "in_progress" becomes "IN PROGRESS".
func Badge(s string) string {
	return cases.Upper(language.English).String(wordSeparators.Replace(s))
}

// Label returns the human-readable status.
func (s DungeonStatus) Label() string { return Humanize(string(s)) }

// Label returns the human-readable status.
func (s QuestStatus) Label() string { return Humanize(string(s)) }

// Label returns e.g. "Weekly Quest".
func (t QuestType) Label() string { return Humanize(string(t)) + " Quest" }

// Label returns the dungeon format badge.
func (t DungeonType) Label() string {
	if t == DungeonGuild {
		return "GUILD RAID"
	}
	return Badge(string(t))
}

// StarString renders the difficulty as filled and empty stars.
func (d Difficulty) StarString() string {
	n := d.Stars()
	return strings.Repeat("★", n) + strings.Repeat("☆", MaxStars-n)
}
