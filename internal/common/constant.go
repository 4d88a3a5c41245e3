// Package common contains shared constants and sentinel errors used across
// budgettracker components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer access token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the access token inside the Authorization header.
const BearerPrefix = "Bearer "

// RequestIDHeaderName is echoed back on every API response.
const RequestIDHeaderName = "X-Request-ID"

// DateLayout is the ISO calendar date format transactions are stored in.
// Lexical order of strings in this layout equals chronological order.
const DateLayout = "2006-01-02"
