package domain

import "time"

// Account is a registered user of the league platform. Email is stored
// normalized (trimmed, lower-cased) and is unique at the storage layer.
type Account struct {
	ID           string
	Email        string
	PasswordHash string // argon2id PHC string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
