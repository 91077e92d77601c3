package scoring

import "strings"

// Seniority levels inferred from role titles. Zero means the level could
// not be inferred.
const (
	LevelUnknown   = 0
	LevelIntern    = 1
	LevelJunior    = 2
	LevelMid       = 3
	LevelSenior    = 4
	LevelLead      = 5
	LevelExecutive = 6
)

var levelKeywords = []struct {
	level    int
	keywords []string
}{
	{LevelExecutive, []string{"head of", "director", "vp ", "vice president", "chief", "cto", "ceo"}},
	{LevelLead, []string{"staff", "principal", "lead", "architect"}},
	{LevelSenior, []string{"senior", "sr ", "sr."}},
	{LevelJunior, []string{"junior", "jr ", "jr.", "entry", "graduate", "trainee", "associate"}},
	{LevelIntern, []string{"intern", "internship", "working student"}},
}

// InferSeniority maps a role title to a coarse level. Titles with no
// level marker are treated as mid-level; empty titles are unknown.
func InferSeniority(title string) int {
	norm := NormalizeTitle(title)
	if norm == "" {
		return LevelUnknown
	}
	t := " " + norm + " "
	for _, lk := range levelKeywords {
		for _, kw := range lk.keywords {
			if strings.Contains(t, kw) {
				return lk.level
			}
		}
	}
	return LevelMid
}
