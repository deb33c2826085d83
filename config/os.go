package config

import (
	"os"
	"strings"
)

const badFileName = "_bad_file_name_"

// CleanFileName drops characters which could not be used in a file name on
// the current platform. Leading dots are removed so results are never
// hidden or relative.
func CleanFileName(in string) string {
	forbidden := forbiddenNameChars + string(os.PathSeparator) + string(os.PathListSeparator)
	out := strings.Map(func(sym rune) rune {
		if sym < 0x20 || strings.ContainsRune(forbidden, sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimSpace(strings.TrimLeft(out, "."))
	if out == "" {
		return badFileName
	}
	return out
}
