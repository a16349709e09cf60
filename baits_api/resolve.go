package baits_api

import (
	"path/filepath"
	"regexp"
	"strings"
)

var placeholderRegex = regexp.MustCompile(`\$[A-Z]+`)

// ResolveOutputPath fills in the placeholders of the output template.
// Unknown placeholders are left untouched.
func ResolveOutputPath(config Config, tag string, ext string) string {
	values := map[string]string{
		"$OUTDIR": config.Outdir,
		"$PREFIX": config.Outprefix,
		"$TAG":    tag,
		"$EXT":    ext,
	}

	path := placeholderRegex.ReplaceAllStringFunc(config.OutputTemplate, func(placeholder string) string {
		if value, ok := values[placeholder]; ok {
			return value
		}
		return placeholder
	})

	// Templates without $EXT still get the extension of the artifact
	if !strings.Contains(config.OutputTemplate, "$EXT") {
		path += ext
	}
	return filepath.Clean(path)
}
