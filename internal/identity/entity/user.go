package entity

import "time"

// User is a verified account. Passwords are stored as submitted.
type User struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Password  string
	CreatedAt time.Time
}
