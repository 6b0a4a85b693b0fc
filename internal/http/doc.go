// Package http provides a JSON client for the planner backend.
//
// The Client in this package handles:
//   - Base URL resolution
//   - User-Agent and content headers
//   - Timeout handling
//   - Mapping non-2xx responses to *StatusError
//
// # Basic Usage
//
//	client := http.NewClient("http://localhost:5000", "modplan", 30*time.Second)
//
//	var resp struct{ Exists bool `json:"exists"` }
//	err := client.GetJSON(ctx, "/api/plans/42", &resp)
//
// # Errors
//
// Transport failures (refused connections, timeouts, cancelled contexts) are
// returned unchanged. A response outside 2xx yields a *StatusError carrying
// the status code and raw body; use IsStatus to tell the two apart.
package http
