// Package api provides the HTTP API server for document QA and summarization.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string
}

// ErrorResponse is the JSON error payload returned by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}
