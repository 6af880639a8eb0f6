// Package storage provides backing-store implementations of the registry's
// catalog, credential and partition contracts.
//
// Two backends exist: an in-memory store for development and tests, and a
// PostgreSQL store (pkg/storage/postgres) for production. Both enforce the
// uniqueness constraints the orchestrator relies on and install the
// per-record shape contract on partitions. The optional caching decorator
// (pkg/storage/cache) layers Redis and an in-process LRU over catalog
// reads.
package storage
