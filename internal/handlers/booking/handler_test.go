package booking

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"atithi/internal/domains/booking/model"
)

func TestListFilter_CheckInRangeKeepsBothBounds(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/bookings?check_in_from=2026-01-01&check_in_to=2026-01-31", nil)

	filter := listFilter(r)
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "bookings.check_in >= :check_in_from")
	assert.Contains(t, where, "bookings.check_in <= :check_in_to")
	assert.Equal(t, "2026-01-01", args[paramCheckInFrom])
	assert.Equal(t, "2026-01-31", args[paramCheckInTo])
}

func TestListFilter_OpenEndedRange(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/bookings?check_in_from=2026-01-01", nil)

	filter := listFilter(r)
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "bookings.check_in >= :check_in_from")
	assert.NotContains(t, where, ":check_in_to")
	assert.Equal(t, "2026-01-01", args[paramCheckInFrom])
	assert.NotContains(t, args, paramCheckInTo)
}

func TestListFilter_SearchWildcardsOnce(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/bookings?search=asha", nil)

	filter := listFilter(r)
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "LOWER(bookings.guest_name::text) LIKE LOWER(:guest_name)")
	assert.Equal(t, "%asha%", args[model.FieldGuestName])
	assert.Equal(t, "%asha%", args[model.FieldGuestEmail])
}

func TestListFilter_CombinesStatusAndRange(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/bookings?payment_status=pending&check_in_from=2026-01-01&check_in_to=2026-01-31", nil)

	filter := listFilter(r)
	_, args := filter.GetWhereClause()

	assert.Len(t, args, 3)
	assert.Equal(t, "pending", args[model.FieldPaymentStatus])
}

func TestListFilter_Empty(t *testing.T) {
	r := httptest.NewRequest("GET", "/v1/bookings", nil)

	filter := listFilter(r)
	where, args := filter.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
