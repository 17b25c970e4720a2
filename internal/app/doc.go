// Package app wires configuration, the daemon client, navigation and
// the terminal UI into a running parlor instance.
package app
