package domain

import (
	"math"

	"seatkeeper/internal/result"
)

// Capacity is the fixed number of seats available per day.
type Capacity int

// AcceptedRequest is a request that passed admission. Only Decide builds one.
type AcceptedRequest struct {
	request ReservationRequest
}

func (a AcceptedRequest) Request() ReservationRequest {
	return a.request
}

// TotalQuantity sums the seats held by reservations, saturating at math.MaxInt.
func TotalQuantity(reservations []ReservationRequest) int {
	total := 0
	for _, r := range reservations {
		if r.Quantity > 0 && total > math.MaxInt-r.Quantity {
			return math.MaxInt
		}
		total += r.Quantity
	}
	return total
}

// Fits reports whether quantity more seats fit next to reserved ones.
// It compares against the remaining room so the sum never overflows.
func Fits(capacity Capacity, reserved, quantity int) bool {
	if reserved > int(capacity) {
		return false
	}
	return quantity <= int(capacity)-reserved
}

// Decide admits candidate when the existing load plus its quantity stays
// within capacity. existing is a snapshot; keeping it current is up to the store.
func Decide(capacity Capacity, candidate ReservationRequest, existing []ReservationRequest) result.Result[AcceptedRequest, FailureCode] {
	if !Fits(capacity, TotalQuantity(existing), candidate.Quantity) {
		return result.Failure[AcceptedRequest](FailureCapacityExceeded)
	}
	return result.Success[AcceptedRequest, FailureCode](AcceptedRequest{request: candidate})
}
