package gameplay

type gainRequest struct {
	Curve      string `json:"curve"`
	Level      int    `json:"level" validate:"min=1,max=100"`
	Experience int    `json:"experience" validate:"min=0,max=10000000"`
	Amount     int    `json:"amount" validate:"min=0,max=10000000"`
}

type gainResponse struct {
	Level        int    `json:"level"`
	Experience   int    `json:"experience"`
	LevelsGained int    `json:"levels_gained"`
	Curve        string `json:"curve"`
	NextLevelXP  int    `json:"next_level_xp"`
}
