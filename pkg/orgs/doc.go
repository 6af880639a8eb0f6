// Package orgs implements the multi-tenant organization registry: catalog
// and credential records, the tenant lifecycle orchestrator, and the
// backing-store contracts it consumes.
//
// Each organization owns exactly one data partition inside the shared
// backing store and exactly one administrator. Create, rename and delete
// are multi-step operations without cross-step locking; the store's unique
// constraints are the concurrency guard and the orchestrator carries
// explicit compensation logic for partial failures.
package orgs
