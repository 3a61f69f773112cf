// Package api exposes decks and review sessions over HTTP. Handlers decode and
// validate requests, call the services in internal/service and map their
// errors to status codes with MapErrorToStatusCode. Responses never carry raw
// error text; details go to the request-scoped log, redacted.
package api
