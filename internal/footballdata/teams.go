package footballdata

import "github.com/strikesquad/squadapi/internal/logger"

// TeamIDMap maps the team names surfaced by the portfolio-enrichment pipeline
// to football-data.org team IDs. Some clubs appear twice because share metadata
// is inconsistent about short vs. full names.
var TeamIDMap = map[string]int64{
	// Premier League
	"Arsenal":                  57,
	"Liverpool":                64,
	"Manchester City":          65,
	"Manchester United":        66,
	"Chelsea":                  61,
	"Tottenham":                73,
	"Tottenham Hotspur":        73,
	"Newcastle":                67,
	"Newcastle United":         67,
	"West Ham":                 563,
	"West Ham United":          563,
	"Brighton":                 397,
	"Aston Villa":              58,
	"Crystal Palace":           354,
	"Fulham":                   63,
	"Everton":                  62,
	"Brentford":                402,
	"Nottingham Forest":        351,
	"Wolves":                   76,
	"Wolverhampton":            76,
	"Bournemouth":              1044,
	"Leicester":                338,
	"Leeds United":             341,
	"Southampton":              340,
	"Ipswich":                  349,

	// La Liga
	"Real Madrid":     86,
	"Barcelona":       81,
	"Atletico Madrid": 78,
	"Sevilla":         559,
	"Valencia":        95,
	"Villarreal":      94,
	"Real Sociedad":   92,
	"Athletic Bilbao": 77,
	"Real Betis":      90,

	// Serie A
	"Inter":       108,
	"Inter Milan": 108,
	"AC Milan":    98,
	"Juventus":    109,
	"Napoli":      113,
	"Roma":        100,
	"Lazio":       110,
	"Atalanta":    102,
	"Fiorentina":  99,
	"Bologna":     103,
	"Torino":      586,
	"Como":        5890,
	"Spezia":      488,

	// Bundesliga
	"Bayern Munich":            5,
	"Borussia Dortmund":        4,
	"RB Leipzig":               721,
	"Bayer Leverkusen":         3,
	"Eintracht Frankfurt":      19,
	"Wolfsburg":                11,
	"Stuttgart":                10,
	"VfB Stuttgart":            10,
	"Borussia Monchengladbach": 18,
	"Union Berlin":             28,
	"Freiburg":                 17,
	"Werder Bremen":            12,

	// Ligue 1
	"PSG":                 524,
	"Paris Saint Germain": 524,
	"Marseille":           516,
	"Monaco":              548,
	"Lyon":                523,
	"Lille":               521,
	"Nice":                522,
	"Lens":                546,
	"Rennes":              529,

	// Other
	"Club Brugge": 510,
}

// ResolveTeamIDs maps team names to football-data.org IDs. Unknown names are
// logged and dropped; duplicate names and duplicate IDs (short/full name
// aliases) collapse to one entry preserving first occurrence.
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
			log.Warn("No football-data.org team ID for %q", name)
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
