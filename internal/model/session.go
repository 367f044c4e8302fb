package model

import "errors"

// Session token error codes returned in the error envelope
const (
	CodeTokenExpired = "TOKEN_EXPIRED"
	CodeTokenInvalid = "TOKEN_INVALID"
)

// SessionCookieName carries the signed session token for browsers.
const SessionCookieName = "access_token"

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)
