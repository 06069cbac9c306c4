package domain

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	PhoneNumber  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ActivityPoint is one day's worth of signup and activity counts.
type ActivityPoint struct {
	Date        time.Time
	NewUsers    int
	ActiveUsers int
}

type UserStats struct {
	TotalUsers  int
	ActiveUsers int
	NewUsers    int
}
