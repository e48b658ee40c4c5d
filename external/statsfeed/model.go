package statsfeed

type playerStatsEnvelope struct {
	Data []playerStatItem `json:"data"`
}

type playerStatItem struct {
	PlayerID        string `json:"player_id"`
	Position        string `json:"position"`
	MinutesPlayed   int    `json:"minutes_played"`
	GoalsScored     int    `json:"goals_scored"`
	Assists         int    `json:"assists"`
	CleanSheet      bool   `json:"clean_sheet"`
	ShotsSaved      int    `json:"saves"`
	PenaltiesSaved  int    `json:"penalties_saved"`
	YellowCards     int    `json:"yellow_cards"`
	RedCards        int    `json:"red_cards"`
	OwnGoals        int    `json:"own_goals"`
	PenaltiesMissed int    `json:"penalties_missed"`
	GoalsConceded   int    `json:"goals_conceded"`
}

type errorEnvelope struct {
	Message string `json:"message"`
}
