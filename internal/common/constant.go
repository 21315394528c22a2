// Package common contains shared constants and sentinel errors used across
// CampusHub components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token
// on protected requests.
const AuthorizationHeaderName = "Authorization"

// BearerSchemePrefix is the expected prefix of the Authorization header value.
const BearerSchemePrefix = "Bearer "
