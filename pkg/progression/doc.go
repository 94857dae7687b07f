// Package progression derives gamified presentation values from raw stats.
//
// Everything here is pure except Animator: ranks from levels, percentages from
// counters, effective statuses and interactivity from quest and dungeon
// records, and the linear ramp used for animated counters. Derivations never
// fail; out-of-range inputs are clamped.
//
//	progression.RankFromLevel(42)          // RankC
//	progression.PercentComplete(3, 4)      // 75
//	d.IsActionable()                       // false for locked/cooldown/completed
//	for v := range progression.Interpolate(100, time.Second, 100*time.Millisecond) {
//	    fmt.Println(v) // 10, 20, ... 100
//	}
//
// Catalogs of quests and dungeons can be loaded from YAML with LoadCatalog and
// summarized into a Board.
package progression
