package model

const detailJoinQuery = "JOIN accommodations ON accommodations.id = bookings.accommodation_id " +
	"JOIN users ON users.id = accommodations.owner_id"

// BookingDetail is a booking row joined with its accommodation and the
// accommodation's owner, used for the details-by-token read and for
// confirmation mails.
type BookingDetail struct {
	Booking
	AccommodationName    string `db:"accommodation_name"    table:"accommodations" column:"name"`
	AccommodationType    string `db:"accommodation_type"    table:"accommodations" column:"type"`
	AccommodationCity    string `db:"accommodation_city"    table:"accommodations" column:"city"`
	AccommodationAddress string `db:"accommodation_address" table:"accommodations" column:"address"`
	OwnerName            string `db:"owner_name"            table:"users"          column:"full_name"`
	OwnerEmail           string `db:"owner_email"           table:"users"          column:"email"`
	OwnerPhone           string `db:"owner_phone"           table:"users"          column:"phone"`
}

func (BookingDetail) GetJoinQuery() string {
	return detailJoinQuery
}
