package model

type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
	Messages int    `json:"messages"`
	Aura     int    `json:"aura"`
}

type GetUserRequest struct {
	UserID string `json:"user_id" form:"user_id"`
}

type GetUserResponse struct {
	User User `json:"user"`
}

type TrackMessageRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type TrackMessageResponse struct {
	User       User `json:"user"`
	LeveledUp  bool `json:"leveled_up"`
	AuraGained int  `json:"aura_gained"`
}

type LeaderboardEntry struct {
	UserID string `json:"user_id"`
	XP     int64  `json:"xp"`
}

type GetLeaderboardRequest struct {
	Offset int `json:"offset" form:"offset"`
	Limit  int `json:"limit" form:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}
