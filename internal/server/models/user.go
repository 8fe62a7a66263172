package models

import "time"

// User is the durable account record. Created on signup, never mutated or
// deleted by this engine. Email is stored and matched case-sensitively.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
