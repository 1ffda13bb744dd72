// Package session persists the CLI's login state to a JSON file and
// tracks the transition into the expired state, so that N concurrent
// rejected requests surface exactly one expiry notice.
package session
