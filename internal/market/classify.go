package market

import "strings"

// Raw provider market keys.
const (
	RawKeyH2H     = "h2h"
	RawKeyTotals  = "totals"
	RawKeySpreads = "spreads"
	RawKeyBTTS    = "btts"
)

// ClassifyH2H maps a raw h2h outcome label to a canonical side.
// Matching is exact string equality after lower-casing; anything that is
// not the home team, the away team, or the literal "draw" is
// unclassifiable. No fuzzy matching: renamed or ambiguous teams must
// surface as dropped quotes, never as silent mis-assignment.
func ClassifyH2H(label, homeTeam, awayTeam string) (Side, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case l == "":
		return "", false
	case l == strings.ToLower(homeTeam):
		return SideHome, true
	case l == strings.ToLower(awayTeam):
		return SideAway, true
	case l == "draw":
		return SideDraw, true
	}
	return "", false
}

// ClassifyTotals maps a raw totals outcome label to over/under. The label
// only needs to contain the word; books vary between "Over", "Over 2.5"
// and similar spellings.
func ClassifyTotals(label string) (Side, bool) {
	l := strings.ToLower(label)
	switch {
	case strings.Contains(l, "over"):
		return SideOver, true
	case strings.Contains(l, "under"):
		return SideUnder, true
	}
	return "", false
}

// ClassifySpreads maps a raw spreads outcome label to home/away using the
// same exact team-name matching as h2h. Spreads have no draw side.
func ClassifySpreads(label, homeTeam, awayTeam string) (Side, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case l == "":
		return "", false
	case l == strings.ToLower(homeTeam):
		return SideHome, true
	case l == strings.ToLower(awayTeam):
		return SideAway, true
	}
	return "", false
}

// ClassifyBTTS maps a both-teams-to-score label to yes/no.
func ClassifyBTTS(label string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "yes":
		return SideYes, true
	case "no":
		return SideNo, true
	}
	return "", false
}
