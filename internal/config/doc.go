// Package config loads parlor's configuration from
// ~/.config/parlor/config.toml.
//
// Every field has a working default, so a missing config file is not an
// error: parlor starts against a local daemon with a bounded 20-entry
// navigation history and the stock debounce and poll intervals. Paths in
// the file may use a leading ~ for the home directory.
package config
