package dto

type ReserveRequest struct {
	Date     string `json:"date"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Quantity int    `json:"quantity"`
}
