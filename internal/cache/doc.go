// Package cache provides the byte-bounded LRU that keeps decompressed chunks
// hot.
//
// Entries carry an explicit size. When the cache grows past its capacity, or
// when the shared resource.Controller refuses a reservation, the least
// recently used entries are handed to the eviction callback. The callback is
// where a storage compresses the chunk into its cold tier.
package cache
