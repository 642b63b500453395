package sportsdb

// playerIDOverrides maps player names straight to TheSportsDB player IDs for
// players the search endpoint cannot find (apostrophes, transliteration
// differences, or names that were rate-limited out of the database build).
var playerIDOverrides = map[string]string{
	"Nico O'Reilly":       "34244585",
	"Harvey Barnes":       "34161470",
	"Christopher Nkunku":  "34162097",
	"Matheus Cunha":       "34169290",
	"Marcus Thuram":       "34169289",
	"Rayan Ait Nouri":     "34181914",
	"Matias Soule":        "34247113",
}

// verifiedPlayer is manually curated metadata that outranks every other
// source. Kept deliberately small: entries are added when the upstream data
// is wrong, not as a general database.
type verifiedPlayer struct {
	Position string
	Team     string
}

var verifiedPlayers = map[string]verifiedPlayer{
	"Erling Haaland":   {Position: "Forward", Team: "Manchester City"},
	"Mohamed Salah":    {Position: "Forward", Team: "Liverpool"},
	"Bukayo Saka":      {Position: "Forward", Team: "Arsenal"},
	"Declan Rice":      {Position: "Midfielder", Team: "Arsenal"},
	"Virgil van Dijk":  {Position: "Defender", Team: "Liverpool"},
	"David Raya":       {Position: "Goalkeeper", Team: "Arsenal"},
	"Cole Palmer":      {Position: "Midfielder", Team: "Chelsea"},
	"Alexander Isak":   {Position: "Forward", Team: "Liverpool"},
	"Kylian Mbappe":    {Position: "Forward", Team: "Real Madrid"},
	"Lamine Yamal":     {Position: "Forward", Team: "Barcelona"},
}
