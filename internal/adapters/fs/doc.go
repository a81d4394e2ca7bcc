// Package fs provides filesystem-backed adapters: the archive store, the
// preferences repository and the archive directory watcher.
package fs
