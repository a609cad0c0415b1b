package finance

import "strings"

// BookingStatus is the lifecycle state of a booking.
//
//	Booking -> Berjalan -> Selesai
//	Booking -> Batal
//	Booking -> Out for delivery
//
// Transitions are not validated; aggregation only looks at the current value.
type BookingStatus string

const (
	StatusBooking        BookingStatus = "Booking"
	StatusRunning        BookingStatus = "Berjalan"
	StatusCompleted      BookingStatus = "Selesai"
	StatusCancelled      BookingStatus = "Batal"
	StatusOutForDelivery BookingStatus = "Out for delivery"
)

// Bucket is the aggregation group a status falls into.
type Bucket int

const (
	BucketOther Bucket = iota
	BucketCompleted
	BucketRunning
)

func (b Bucket) String() string {
	switch b {
	case BucketCompleted:
		return "completed"
	case BucketRunning:
		return "running"
	default:
		return "other"
	}
}

// statusBuckets lists every known status. A new status must be added here,
// otherwise ParseBookingStatus rejects it.
var statusBuckets = map[BookingStatus]Bucket{
	StatusBooking:        BucketOther,
	StatusRunning:        BucketRunning,
	StatusCompleted:      BucketCompleted,
	StatusCancelled:      BucketOther,
	StatusOutForDelivery: BucketOther,
}

// KnownStatuses returns the statuses in lifecycle order.
func KnownStatuses() []BookingStatus {
	return []BookingStatus{StatusBooking, StatusRunning, StatusOutForDelivery, StatusCompleted, StatusCancelled}
}

// statusAliases maps lower-cased spellings seen in stored data to a status.
var statusAliases = map[string]BookingStatus{
	"booking":          StatusBooking,
	"berjalan":         StatusRunning,
	"selesai":          StatusCompleted,
	"completed":        StatusCompleted,
	"batal":            StatusCancelled,
	"cancelled":        StatusCancelled,
	"out for delivery": StatusOutForDelivery,
}

// ParseBookingStatus normalises a stored or submitted status string.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	st, ok := statusAliases[strings.ToLower(strings.TrimSpace(s))]
	return st, ok
}

// BucketOf maps a status to its aggregation bucket. Unknown values are "other".
func BucketOf(s BookingStatus) Bucket {
	if b, ok := statusBuckets[s]; ok {
		return b
	}
	if parsed, ok := ParseBookingStatus(string(s)); ok {
		return statusBuckets[parsed]
	}
	return BucketOther
}
