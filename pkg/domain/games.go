package domain

type Game struct {
	Rank             int    `json:"rank"`
	Name             string `json:"name"`
	AvgPlaytimeHours int    `json:"avgPlaytimeHours"`
	Rating           int    `json:"rating"`
	Players          string `json:"players"`
	Genre            string `json:"genre"`
}

type GenreShare struct {
	Genre   string `json:"genre"`
	Percent int    `json:"percent"`
}

// TopGames is the static dataset the analyst answers about.
var TopGames = []Game{
	{Rank: 1, Name: "Counter-Strike 2", AvgPlaytimeHours: 1247, Rating: 95, Players: "1.5M", Genre: "FPS"},
	{Rank: 2, Name: "Dota 2", AvgPlaytimeHours: 1156, Rating: 92, Players: "850K", Genre: "Strategy"},
	{Rank: 3, Name: "Baldur's Gate 3", AvgPlaytimeHours: 743, Rating: 96, Players: "650K", Genre: "RPG"},
	{Rank: 4, Name: "Team Fortress 2", AvgPlaytimeHours: 892, Rating: 89, Players: "420K", Genre: "FPS"},
	{Rank: 5, Name: "Warframe", AvgPlaytimeHours: 567, Rating: 87, Players: "380K", Genre: "FPS"},
	{Rank: 6, Name: "Terraria", AvgPlaytimeHours: 445, Rating: 94, Players: "320K", Genre: "Indie"},
}

var GenreDistribution = []GenreShare{
	{Genre: "FPS", Percent: 35},
	{Genre: "RPG", Percent: 28},
	{Genre: "Strategy", Percent: 18},
	{Genre: "Indie", Percent: 12},
	{Genre: "Other", Percent: 7},
}

var SampleQuestions = []string{
	"Which game has the highest playtime and why?",
	"What trends do you see in PC gaming?",
	"Compare Counter-Strike 2 vs Dota 2 performance",
	"What makes Baldur's Gate 3 so highly rated?",
	"Analyze the genre distribution data",
}
