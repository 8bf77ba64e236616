package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import "errors"

// ErrDuplicateRegistration is returned when a write would give two vehicles
// the same registration number. Implementations must detect the collision
// inside the same atomic unit as the write; a persistence-layer unique
// constraint violation is reported as this same error.
var ErrDuplicateRegistration = errors.New("registration number already exists")
