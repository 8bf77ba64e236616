package model

import "time"

// Vehicle is a registered asset owned by exactly one user. The registration
// number is unique across all vehicles regardless of owner, compared exactly
// as stored (case-sensitive).
type Vehicle struct {
	ID                 string    `json:"id"`
	RegistrationNumber string    `json:"registrationNumber"`
	OwnerName          string    `json:"ownerName"`
	OwnerMobile        string    `json:"ownerMobile"`
	UserID             string    `json:"userId"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// VehicleWithDocuments is a vehicle together with all of its documents.
type VehicleWithDocuments struct {
	Vehicle
	Documents []Document `json:"documents"`
}
