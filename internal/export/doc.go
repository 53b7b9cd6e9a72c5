// Package export hands a reviewed playlist to its destination: the macOS
// Music application or a playlist file on disk.
package export
