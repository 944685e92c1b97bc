// Package sec provides the password hashing and shared-secret primitives for
// the account service.
//
// Passwords are hashed with bcrypt at its default cost (10 rounds); the cost
// is a deliberate CPU-time tradeoff that slows brute-force attempts against
// stolen hashes. Account creation is gated by a single shared admin secret
// compared in constant time.
//
// IMPORTANT: Basic Auth transmits credentials in base64 encoding (not
// encrypted). TLS must be used in production to protect credentials in
// transit.
package sec
