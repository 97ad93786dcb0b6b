package domain

import "time"

type User struct {
	ID            int
	Username      string
	PasswordHash  string
	LoginAttempts int
	FirstAttempt  *time.Time
}

type UserDetails struct {
	UserID      int
	FirstName   string
	LastName    string
	MiddleName  string
	PhoneNumber string
	Email       string
	City        string
}
