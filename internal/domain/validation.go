package domain

import (
	"strings"

	"seatkeeper/internal/result"
)

// Validate checks req rule by rule and reports only the first broken rule:
// missing request, blank email, blank name, then non-positive quantity.
func Validate(req *ReservationRequest) result.Result[ReservationRequest, FailureCode] {
	if req == nil {
		return result.Failure[ReservationRequest](FailureInvalidInput)
	}
	if strings.TrimSpace(req.Email) == "" {
		return result.Failure[ReservationRequest](FailureEmptyEmail)
	}
	if strings.TrimSpace(req.Name) == "" {
		return result.Failure[ReservationRequest](FailureEmptyName)
	}
	if req.Quantity <= 0 {
		return result.Failure[ReservationRequest](FailureNegativeQuantity)
	}
	return result.Success[ReservationRequest, FailureCode](*req)
}
