// Package backend provides the HTTP client for the parlor daemon.
//
// The daemon owns all protocol, storage and sync work. The presentation
// layer treats it as an external collaborator reachable through a small
// read API: a readiness probe that gates mounting the main UI, an account
// existence query consumed once at startup, and per-account room, member
// and message fetches. Fetches are fire-and-forget from the UI's point of
// view; results land in the state store and the UI reacts to the change
// notifications.
package backend
