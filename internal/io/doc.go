// Package ioutils provides file system utilities.
//
// This package contains functions for:
//   - File copying and writing
//   - Replacing a file with a rewritten sibling
//   - Filename sanitization for cross-platform compatibility
//   - Directory creation
//
// # Safe Rewrites
//
// Tag writers never modify an audio file in place. They write a new file
// next to the original and move it over the original:
//
//	tmp, err := ioutils.TempSibling(path)
//	// ... write the new content to tmp ...
//	err = ioutils.ReplaceFile(tmp, path)
//
// Keeping the temporary file in the same directory means the final
// rename never crosses a device boundary.
//
// # Filename Sanitization
//
//	safe := ioutils.SanitizeFileName("Road Trip: Part 1/2") // "Road Trip_ Part 1_2"
package ioutils
