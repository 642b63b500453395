package apisports

import "github.com/strikesquad/squadapi/internal/logger"

// TeamIDMap maps squad team names to API-Football team IDs. The providers use
// disjoint ID spaces for the same real-world clubs, so this map is unrelated
// to the football-data.org one.
var TeamIDMap = map[string]int64{
	// Premier League
	"Manchester City":   50,
	"Liverpool":         40,
	"Arsenal":           42,
	"Chelsea":           49,
	"Manchester United": 33,
	"Tottenham":         47,
	"Tottenham Hotspur": 47,
	"Newcastle":         34,
	"Newcastle United":  34,
	"West Ham":          48,
	"West Ham United":   48,
	"Brighton":          51,
	"Aston Villa":       66,
	"Crystal Palace":    52,
	"Fulham":            36,
	"Everton":           45,
	"Brentford":         55,
	"Nottingham Forest": 65,
	"Wolves":            39,
	"Wolverhampton":     39,
	"Bournemouth":       35,
	"Leicester":         46,
	"Leeds United":      63,
	"Southampton":       41,
	"Ipswich":           57,

	// La Liga
	"Real Madrid":     541,
	"Barcelona":       529,
	"Atletico Madrid": 530,
	"Sevilla":         536,
	"Valencia":        532,
	"Villarreal":      533,
	"Real Sociedad":   548,
	"Athletic Bilbao": 531,
	"Real Betis":      543,

	// Serie A
	"Inter":      505,
	"AC Milan":   489,
	"Juventus":   496,
	"Napoli":     492,
	"Roma":       497,
	"Lazio":      487,
	"Atalanta":   499,
	"Fiorentina": 502,
	"Bologna":    500,
	"Torino":     503,
	"Como":       512,
	"Spezia":     515,

	// Bundesliga
	"Bayern Munich":            157,
	"Borussia Dortmund":        165,
	"RB Leipzig":               173,
	"Bayer Leverkusen":         168,
	"Eintracht Frankfurt":      169,
	"Wolfsburg":                178,
	"Stuttgart":                172,
	"VfB Stuttgart":            172,
	"Borussia Monchengladbach": 163,
	"Union Berlin":             28,
	"Freiburg":                 160,
	"Werder Bremen":            162,

	// Ligue 1
	"PSG":                 85,
	"Paris Saint Germain": 85,
	"Marseille":           81,
	"Monaco":              91,
	"Lyon":                80,
	"Lille":               79,
	"Nice":                82,
	"Lens":                77,
	"Rennes":              92,

	// Other
	"Club Brugge": 569,
}

// ResolveTeamIDs maps team names to API-Football IDs, dropping unknown names
// and collapsing duplicates while preserving first occurrence.
func ResolveTeamIDs(teamNames []string, log *logger.Logger) []int64 {
	seenNames := make(map[string]bool, len(teamNames))
	seenIDs := make(map[int64]bool, len(teamNames))
	var ids []int64

	for _, name := range teamNames {
		if seenNames[name] {
			continue
		}
		seenNames[name] = true

		id, ok := TeamIDMap[name]
		if !ok {
			log.Warn("No API-Football team ID for %q", name)
			continue
		}
		if seenIDs[id] {
			continue
		}
		seenIDs[id] = true
		ids = append(ids, id)
	}

	return ids
}
