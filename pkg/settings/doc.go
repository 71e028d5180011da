// Package settings writes the appliance-wide authentication mode flags to
// the centralized settings store.
//
// The orchestrator only ever writes these keys as a fixed ordered batch; the
// Client interface treats a batch as one logical update. The default backend
// is a local sqlite database with transactional upserts.
package settings
