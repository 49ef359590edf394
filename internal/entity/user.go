package entity

// User keeps the per-member chat statistics the giveaway eligibility gates
// read. The ID is the chat platform user id.
type User struct {
	Base

	Name     string
	XP       int
	Level    int `gorm:"default:1"`
	Messages int
	Aura     int
}
