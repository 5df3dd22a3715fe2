// Package client talks to the wardrobe HTTP API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     the auth routes, outfits, tags, comments and image uploads.
//  2. A concrete implementation over go-resty (see HTTPClient) that keeps the
//     session and update tokens of the current login and transparently
//     renews an expired session once before giving up.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrNotFound. Other non-2xx
// answers come back as *APIError carrying the status and server message.
package client
