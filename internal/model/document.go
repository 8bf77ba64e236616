package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DocumentType enumerates the compliance document kinds a vehicle can carry.
type DocumentType string

const (
	DocumentTypeInsurance DocumentType = "insurance"
	DocumentTypePollution DocumentType = "pollution"
	DocumentTypeTax       DocumentType = "tax"
	DocumentTypeFitness   DocumentType = "fitness"
	DocumentTypePermit    DocumentType = "permit"
	DocumentTypeAadhar    DocumentType = "aadhar"
	DocumentTypeOwnerBook DocumentType = "owner_book"
	DocumentTypeOther     DocumentType = "other"
)

// DocumentTypes lists every valid document type.
var DocumentTypes = []DocumentType{
	DocumentTypeInsurance,
	DocumentTypePollution,
	DocumentTypeTax,
	DocumentTypeFitness,
	DocumentTypePermit,
	DocumentTypeAadhar,
	DocumentTypeOwnerBook,
	DocumentTypeOther,
}

// Valid reports whether t is one of the known document types.
func (t DocumentType) Valid() bool {
	for _, dt := range DocumentTypes {
		if t == dt {
			return true
		}
	}
	return false
}

// Date is a calendar date (no time-of-day) serialized as "2006-01-02" in JSON
// and stored as a SQL DATE. The zero value is not a usable date; optional
// dates are represented as *Date.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Value implements driver.Valuer so a Date binds as a SQL DATE.
func (d Date) Value() (driver.Value, error) {
	return d.Format(dateLayout), nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case time.Time:
		d.Time = time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return fmt.Errorf("scan date %q: %w", v, err)
		}
		d.Time = t
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}
}

// Document is a compliance record attached to a vehicle. ExpiryDate is
// required for every type except owner_book; FileURL is required for
// owner_book and optional otherwise. FileURL is an opaque storage reference;
// the application never interprets it.
type Document struct {
	ID         string       `json:"id"`
	VehicleID  string       `json:"vehicleId"`
	Type       DocumentType `json:"type"`
	ExpiryDate *Date        `json:"expiryDate"`
	FileURL    string       `json:"fileUrl"`
	Notes      string       `json:"notes,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}
