// Package api exposes flashdeck over HTTP: authentication, card set CRUD and
// export, AI drafting of sets, API key settings, and practice sessions.
// Handlers decode and validate JSON, call the service layer, and translate
// errors into status codes and messages that are safe to show to clients.
package api
