// Package logtail reads back the pokesearch log file.
//
// # Overview
//
// The TUI owns the terminal, so pokesearch logs to a JSON file instead. This
// package turns the tail of that file into something readable for the
// `pokesearch logs` command.
//
//  1. Read: the last N raw lines of a file
//  2. Parse: decode one zap JSON line into an Entry
//  3. Tail: Read + Parse + minimum level filter + limit
//  4. Entry.String / Entry.Render: plain or colored single-line output
//
// # Reading Log Files
//
// Read uses a ring buffer of size maxLines, so memory stays O(maxLines)
// regardless of file size and lines come back in file order:
//
//	1. Allocate ring buffer of size maxLines
//	2. For each line in file:
//	   - Store line at current index
//	   - Increment index (wrapping at maxLines)
//	   - Track total lines seen
//	3. If total < maxLines: return the first 'count' entries
//	4. Otherwise: return the buffer starting at the current index
//
// Tail reads the whole file because the level filter has to see every line
// before the limit applies.
//
// # Formatting
//
// The ts, level, logger and msg keys become the fixed columns; caller is
// dropped and every other key is printed as key=value in sorted order:
//
//	2026-10-19T10:00:00.000Z WARN [search] resolve failed message=Pokemon not found term=doesnotexist
//
// Lines that are not JSON (a crash trace, say) pass through untouched.
package logtail
