package dto

import (
	"atithi/internal/domains/accommodation/model"
	"atithi/shared"
	gDto "atithi/shared/dto"
	gModel "atithi/shared/model"
	"atithi/shared/timezone"
	"mime/multipart"

	"github.com/google/uuid"
)

type CreateAccommodationRequest struct {
	Name                  string   `json:"name"                     validate:"required,min=3,max=150"`
	Type                  string   `json:"type"                     validate:"required,oneof=resort villa"`
	Address               string   `json:"address"                  validate:"required"`
	City                  string   `json:"city"                     validate:"required,max=100"`
	Latitude              float64  `json:"latitude"                 validate:"omitempty,min=-90,max=90"`
	Longitude             float64  `json:"longitude"                validate:"omitempty,min=-180,max=180"`
	OwnerID               string   `json:"owner_id"                 validate:"required"`
	Capacity              int      `json:"capacity"                 validate:"required,min=1"`
	Rooms                 int      `json:"rooms"                    validate:"required,min=1"`
	PricePerNight         float64  `json:"price_per_night"          validate:"required,gt=0"`
	Amenities             []string `json:"amenities"                validate:"omitempty"`
	Features              []string `json:"features"                 validate:"omitempty"`
	Images                []string `json:"images"                   validate:"omitempty,dive,url"`
	PackageName           string   `json:"package_name"             validate:"omitempty,max=150"`
	PackageDescription    string   `json:"package_description"      validate:"omitempty"`
	PackageImages         []string `json:"package_images"           validate:"omitempty,dive,url"`
	PackagePricePerPerson float64  `json:"package_price_per_person" validate:"omitempty,min=0"`
	PackageMaxGuests      int      `json:"package_max_guests"       validate:"omitempty,min=0"`
	Active                bool     `json:"active"`
}

func (c *CreateAccommodationRequest) ToModel(user string) model.Accommodation {
	return model.Accommodation{
		ID:                    uuid.NewString(),
		Name:                  c.Name,
		Type:                  c.Type,
		Address:               c.Address,
		City:                  c.City,
		Latitude:              c.Latitude,
		Longitude:             c.Longitude,
		OwnerID:               c.OwnerID,
		Capacity:              c.Capacity,
		Rooms:                 c.Rooms,
		PricePerNight:         c.PricePerNight,
		Amenities:             c.Amenities,
		Features:              c.Features,
		Images:                c.Images,
		PackageName:           c.PackageName,
		PackageDescription:    c.PackageDescription,
		PackageImages:         c.PackageImages,
		PackagePricePerPerson: c.PackagePricePerPerson,
		PackageMaxGuests:      c.PackageMaxGuests,
		Active:                c.Active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateAccommodationRequest is a partial update: nil fields are left
// untouched.
type UpdateAccommodationRequest struct {
	Name                  *string   `db:"name"                     json:"name"                     validate:"omitempty,min=3,max=150"`
	Type                  *string   `db:"type"                     json:"type"                     validate:"omitempty,oneof=resort villa"`
	Address               *string   `db:"address"                  json:"address"                  validate:"omitempty"`
	City                  *string   `db:"city"                     json:"city"                     validate:"omitempty,max=100"`
	Latitude              *float64  `db:"latitude"                 json:"latitude"                 validate:"omitempty,min=-90,max=90"`
	Longitude             *float64  `db:"longitude"                json:"longitude"                validate:"omitempty,min=-180,max=180"`
	Capacity              *int      `db:"capacity"                 json:"capacity"                 validate:"omitempty,min=1"`
	Rooms                 *int      `db:"rooms"                    json:"rooms"                    validate:"omitempty,min=1"`
	PricePerNight         *float64  `db:"price_per_night"          json:"price_per_night"          validate:"omitempty,gt=0"`
	Amenities             *[]string `db:"amenities"                json:"amenities"                validate:"omitempty"`
	Features              *[]string `db:"features"                 json:"features"                 validate:"omitempty"`
	Images                *[]string `db:"images"                   json:"images"                   validate:"omitempty,dive,url"`
	PackageName           *string   `db:"package_name"             json:"package_name"             validate:"omitempty,max=150"`
	PackageDescription    *string   `db:"package_description"      json:"package_description"      validate:"omitempty"`
	PackageImages         *[]string `db:"package_images"           json:"package_images"           validate:"omitempty,dive,url"`
	PackagePricePerPerson *float64  `db:"package_price_per_person" json:"package_price_per_person" validate:"omitempty,min=0"`
	PackageMaxGuests      *int      `db:"package_max_guests"       json:"package_max_guests"       validate:"omitempty,min=0"`
	Active                *bool     `db:"active"                   json:"active"`
}

type AccommodationResponse struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Type                  string   `json:"type"`
	Address               string   `json:"address"`
	City                  string   `json:"city"`
	Latitude              float64  `json:"latitude"`
	Longitude             float64  `json:"longitude"`
	OwnerID               string   `json:"owner_id"`
	Capacity              int      `json:"capacity"`
	Rooms                 int      `json:"rooms"`
	PricePerNight         float64  `json:"price_per_night"`
	Amenities             []string `json:"amenities"`
	Features              []string `json:"features"`
	Images                []string `json:"images"`
	PackageName           string   `json:"package_name,omitempty"`
	PackageDescription    string   `json:"package_description,omitempty"`
	PackageImages         []string `json:"package_images,omitempty"`
	PackagePricePerPerson float64  `json:"package_price_per_person,omitempty"`
	PackageMaxGuests      int      `json:"package_max_guests,omitempty"`
	Active                bool     `json:"active"`
	gDto.Metadata
}

func (r *AccommodationResponse) FromModel(model model.Accommodation) {
	r.ID = model.ID
	r.Name = model.Name
	r.Type = model.Type
	r.Address = model.Address
	r.City = model.City
	r.Latitude = model.Latitude
	r.Longitude = model.Longitude
	r.OwnerID = model.OwnerID
	r.Capacity = model.Capacity
	r.Rooms = model.Rooms
	r.PricePerNight = model.PricePerNight
	r.Amenities = model.Amenities
	r.Features = model.Features
	r.Images = model.Images
	r.PackageName = model.PackageName
	r.PackageDescription = model.PackageDescription
	r.PackageImages = model.PackageImages
	r.PackagePricePerPerson = model.PackagePricePerPerson
	r.PackageMaxGuests = model.PackageMaxGuests
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetAccommodationsResponse struct {
	Accommodations []AccommodationResponse `json:"accommodations"`
	TotalPage      int                     `json:"total_page"`
	TotalData      int                     `json:"total_data"`
}

func (r *GetAccommodationsResponse) FromModels(models []model.Accommodation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Accommodations = make([]AccommodationResponse, len(models))
	for i, m := range models {
		r.Accommodations[i].FromModel(m)
	}
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=10"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}
