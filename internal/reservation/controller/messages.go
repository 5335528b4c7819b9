package controller

import (
	"net/http"

	"seatkeeper/internal/domain"
)

type failureMessage struct {
	status  int
	message string
}

var failureMessages = map[domain.FailureCode]failureMessage{
	domain.FailureInvalidInput:     {http.StatusBadRequest, "reservation request is missing"},
	domain.FailureEmptyEmail:       {http.StatusBadRequest, "email must not be empty"},
	domain.FailureEmptyName:        {http.StatusBadRequest, "name must not be empty"},
	domain.FailureNegativeQuantity: {http.StatusBadRequest, "quantity must be a positive number"},
	domain.FailureReadStore:        {http.StatusServiceUnavailable, "could not read existing reservations, try again later"},
	domain.FailureCapacityExceeded: {http.StatusConflict, "not enough seats left for that date"},
	domain.FailureWriteStore:       {http.StatusServiceUnavailable, "could not save the reservation, try again later"},
}

func messageFor(code domain.FailureCode) failureMessage {
	if m, ok := failureMessages[code]; ok {
		return m
	}
	return failureMessage{http.StatusInternalServerError, "an unexpected error occurred"}
}
