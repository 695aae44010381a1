// Package store provides durable key-value backends for the story store.
// The Backend interface is defined in the parent storybook package
// (../store_interface.go) to avoid import cycles between the storybook
// and store packages.
//
// This package contains concrete implementations:
//   - DynamoDBBackend: AWS DynamoDB backend
//   - SQLiteBackend: local SQLite file backend
//   - RedisBackend: Redis backend
//   - MemoryBackend: in-memory backend for testing
//
// DynamoDB schema design follows the single-table pattern in schema.go.
package store
