package model

// Package model contains domain models/data structures.
// These are pure structs shared across layers (HTTP, service, repository)
// with no database-specific dependencies or tags.

// User is the authenticated operator account. Its ID is the value that
// ownership checks compare against Vehicle.UserID.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}
