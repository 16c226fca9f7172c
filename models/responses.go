package models

import "github.com/google/uuid"

// Response envelopes returned by the HTTP API. Every success body wraps its
// payload in a named field, and every failure is rendered as HTTPError's
// {"msg": ...} shape.

// PlaceResponse wraps a single place.
type PlaceResponse struct {
	Place Place `json:"place"`
}

// PlacesResponse wraps a collection of places.
type PlacesResponse struct {
	Places []Place `json:"places"`
}

// UsersResponse wraps a collection of users.
type UsersResponse struct {
	Users []User `json:"users"`
}

// MessageResponse carries a confirmation message, e.g. after a delete.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// AuthResponse is returned by signup and login. The password is never
// echoed; only the identity pair and the signed bearer token are returned.
type AuthResponse struct {
	UserID uuid.UUID `json:"userId"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}
