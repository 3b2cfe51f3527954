// Package api provides the client for the remote assistant endpoint.
package api

// GJSON paths for extracting values from assistant responses.
const (
	// PathResponse holds the reply text of a successful round trip
	PathResponse = "response"

	// PathDetail holds the error description of a failed round trip
	PathDetail = "detail"
)

// ChatPath is appended to the configured base URL
const ChatPath = "/chat"

// maxErrorBody bounds how much of a failed response is kept for diagnostics
const maxErrorBody = 4096

// maxResponseBody bounds how much of a successful response is read
const maxResponseBody = 8 << 20
