package models

import "encoding/json"

// User is the identity the auth service reports for the current account.
type User struct {
	ID          json.Number `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	MemberSince string      `json:"memberSince,omitempty"`
}

// Session is the client-side credential: the bearer token plus the identity
// it was issued for. The server calls the token "access_token" on the wire;
// past this package it is only ever the session token.
type Session struct {
	Token string
	User  User
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
