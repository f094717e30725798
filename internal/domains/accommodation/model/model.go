package model

import (
	"atithi/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "accommodations"
	EntityName = "accommodation"

	FieldID      = "id"
	FieldName    = "name"
	FieldType    = "type"
	FieldCity    = "city"
	FieldOwnerID = "owner_id"
	FieldActive  = "active"
	FieldImages  = "images"
)

type Accommodation struct {
	ID                    string         `db:"id"`
	Name                  string         `db:"name"`
	Type                  string         `db:"type"`
	Address               string         `db:"address"`
	City                  string         `db:"city"`
	Latitude              float64        `db:"latitude"`
	Longitude             float64        `db:"longitude"`
	OwnerID               string         `db:"owner_id"`
	Capacity              int            `db:"capacity"`
	Rooms                 int            `db:"rooms"`
	PricePerNight         float64        `db:"price_per_night"`
	Amenities             pq.StringArray `db:"amenities"`
	Features              pq.StringArray `db:"features"`
	Images                pq.StringArray `db:"images"`
	PackageName           string         `db:"package_name"`
	PackageDescription    string         `db:"package_description"`
	PackageImages         pq.StringArray `db:"package_images"`
	PackagePricePerPerson float64        `db:"package_price_per_person"`
	PackageMaxGuests      int            `db:"package_max_guests"`
	Active                bool           `db:"active"`
	model.Metadata
}
