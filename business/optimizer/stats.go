package optimizer

// statVocabulary is what the client offers in its stat pickers. Optimize
// accepts any name; unknown ones simply score 0.
var statVocabulary = []string{
	"HP",
	"ATK",
	"DEF",
	"HP%",
	"ATK%",
	"DEF%",
	"SPD",
	"Crit Rate",
	"Crit DMG",
	"Break Effect",
	"Effect Hit Rate",
	"Effect RES",
	"Energy Regeneration Rate",
	"Outgoing Healing Boost",
	"Elemental DMG Boost",
}

// StatVocabulary returns the recommended statistic names.
func StatVocabulary() []string {
	out := make([]string, len(statVocabulary))
	copy(out, statVocabulary)
	return out
}
