// Package memo provides a bounded in-memory store for pipeline results keyed
// by a content fingerprint.
//
// Entries are evicted oldest-first once the store reaches its capacity. A
// stored value is shared between every caller that hits its key, so values
// must be treated as read-only.
package memo
