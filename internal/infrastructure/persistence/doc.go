// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to interact with databases, managing
// samples, processes, topics, users, status messages and feed entries.
// The package includes
// validation and logging for traceability and error handling.
package persistence
