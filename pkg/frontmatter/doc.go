// Package frontmatter extracts the metadata block at the head of a text
// document into a generic mapping.
//
// Two block styles are recognised: YAML delimited by lines containing only
// "---", and TOML delimited by lines containing only "+++". Leading blank
// lines and a UTF-8 byte order mark before the opening delimiter are ignored.
// Both Unix (LF) and Windows (CRLF) line endings are handled.
//
// # Basic Usage
//
//	meta, err := frontmatter.ExtractFile("posts/hello.md")
//	switch {
//	case errors.Is(err, frontmatter.ErrNoFrontmatter):
//		// document has no metadata block
//	case err != nil:
//		// unreadable file or malformed block
//	}
//	fmt.Println(meta["title"])
//
// # Value Kinds
//
// Values keep their native kinds so callers can check types: strings,
// integers, floats, booleans, []any, map[string]any and time.Time. Unquoted
// YAML timestamps such as 2023-01-01 become time.Time while quoted ones stay
// strings. TOML local dates and date-times are converted to time.Time in UTC.
//
// # Error Handling
//
//   - [ErrNoFrontmatter]: the document has no complete delimited block
//   - [ErrInvalidFrontmatter]: the block is not valid YAML/TOML or is not a mapping
package frontmatter
