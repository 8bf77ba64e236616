package service

import (
	"fleetdocs/internal/model"
)

// validateVehicleFields checks the required vehicle fields. Mirrors the
// client form contract: registration number and owner name must be present,
// the mobile number needs at least ten digits.
func validateVehicleFields(in VehicleInput) *ValidationError {
	if in.RegistrationNumber == "" {
		return validationErr("registrationNumber", "registration number is required")
	}
	if in.OwnerName == "" {
		return validationErr("ownerName", "owner name is required")
	}
	if len(in.OwnerMobile) < 10 {
		return validationErr("ownerMobile", "valid mobile number is required")
	}
	return nil
}

// validateDocumentFields enforces the per-type conditional requirement:
// owner_book must carry a file (its expiry date is optional); every other
// type must carry an expiry date (its file is optional). A zero-valued date
// counts as absent: JSON `"expiryDate": ""` decodes to a zero Date, and
// persisting 0001-01-01 would poison the alert feed. The same rule applies
// whether the document arrives standalone or inside a bulk
// vehicle-with-documents request.
func validateDocumentFields(typ model.DocumentType, expiryDate *model.Date, fileURL string) *ValidationError {
	if !typ.Valid() {
		return validationErr("type", "unknown document type")
	}
	if typ == model.DocumentTypeOwnerBook {
		if fileURL == "" {
			return validationErr("fileUrl", "document file is required for owner book")
		}
		return nil
	}
	if expiryDate == nil || expiryDate.IsZero() {
		return validationErr("expiryDate", "expiry date is required")
	}
	return nil
}

// normalizeExpiry maps a zero-valued date to nil so an empty JSON string
// behaves exactly like an omitted field everywhere downstream.
func normalizeExpiry(d *model.Date) *model.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	return d
}
