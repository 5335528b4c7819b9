package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

// ReservationRequest is built by the caller and never mutated afterwards.
type ReservationRequest struct {
	Date     time.Time
	Name     string
	Email    string
	Quantity int
}

// NewReservationRequest normalises date to the calendar day it falls on.
func NewReservationRequest(date time.Time, name, email string, quantity int) ReservationRequest {
	return ReservationRequest{
		Date:     Day(date),
		Name:     name,
		Email:    email,
		Quantity: quantity,
	}
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

type ReservationID struct {
	uuid.UUID
}

func NewReservationID() ReservationID {
	return ReservationID{UUID: uuid.New()}
}

func ParseReservationID(s string) (ReservationID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ReservationID{}, err
	}
	return ReservationID{UUID: id}, nil
}
