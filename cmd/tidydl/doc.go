// Command tidydl organizes a downloads folder into tilde-prefixed category
// subfolders, records every pass as an undo manifest, and can replay the
// latest pass in reverse.
package main
