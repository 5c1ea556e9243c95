// Package session provides game session management for GridPath.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Optional file-backed persistence of serialized game states
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// Each session couples one engine.Game with bookkeeping such as creation
// time, last access time and the move history.
//
// Session Identifiers:
//
// Sessions use short lowercase IDs, generated as 4 hex characters from
// cryptographic randomness when the caller does not choose one. Custom IDs
// are restricted to filename-safe characters because they double as storage
// keys.
//
// Persistence:
//
// With a SessionPersistence configured, every session is mirrored to one
// JSON file holding the serialized engine state plus metadata. A restarted
// server restores sessions lazily on first access or eagerly via
// LoadPersisted.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("./sessions")
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//
//	// Create a session with a generated ID and default config
//	sess, err := manager.Create("", engine.Config{}, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve it later, possibly after a restart
//	sess, err = manager.Get(sess.ID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Concurrency:
//
// The manager is safe for concurrent use. Access to the individual games it
// hands out is serialized by the service layer, not by the manager.
package session
