// Package session implements the client session manager.
//
// A Manager owns the current user record. It moves between three states:
//
//	uninitialized --Restore--> anonymous | authenticated
//	anonymous     --Login/Signup--> authenticated
//	authenticated --Login/Signup--> authenticated (record replaced wholesale)
//	authenticated --Logout--> anonymous
//
// The record is mirrored in a durable Slot so that Restore can bring the
// session back after a restart. A Manager is built once at process start and
// handed to every consumer. It is never torn down; only Logout resets it.
//
// Session-changing calls are serialized: a Logout issued while a Login is in
// flight waits for the Login to finish. Readers (CurrentUser, State, Busy)
// never wait on a pending operation.
//
// When a call fails, state and user are left exactly as they were.
// Persistence failures match ErrPersistence, backend refusals match
// ErrRejected.
package session
