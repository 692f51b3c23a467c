package algo

import "github.com/fz-finder/fz/internal/util"

// defaultDelimiterChars returns the platform default for Config.DelimiterChars
// (spec.md §3): the path separator(s) a user is likeliest to want treated as
// a word boundary even without an explicit --delimiter.
func defaultDelimiterChars() string {
	return util.OS.Sieve("/", "/\\").(string)
}
