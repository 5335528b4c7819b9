package dto

import "time"

const StatusReserved = "RESERVED"

type ReserveResponse struct {
	TraceID       string    `json:"traceId"`
	ReservationID string    `json:"reservationId"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
}

type ReserveErrorResponse struct {
	TraceID   string    `json:"traceId"`
	Status    int       `json:"status"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}
