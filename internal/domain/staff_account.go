package domain

import "time"

// StaffAccount is an IT staff login. The system distinguishes only
// authenticated staff from anonymous submitters; there is no finer role
// hierarchy.
type StaffAccount struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// StaffIdentity is the validated principal handed to the ticket service by
// the session gate. The service trusts it and performs no authentication of
// its own.
type StaffIdentity struct {
	Username string
}
