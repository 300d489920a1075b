package models

// User is a registered account. The password hash never leaves the
// credential verifier.
type User struct {
	ID           int64  `json:"id"`
	Login        string `json:"login"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}

// Identity is the authenticated view of a user returned by a successful
// login. It deliberately carries no credential material.
type Identity struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
}

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}
