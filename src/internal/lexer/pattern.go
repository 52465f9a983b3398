// FILE: logtools/src/internal/lexer/pattern.go
package lexer

import (
	"fmt"
	"regexp"
	"strings"

	"logtools/src/internal/core"
)

// CompilePattern compiles an entry-start expression anchored at line start.
// With stripSource the expression also accepts a leading "<label>: " prefix
// as written by a labeled merge.
func CompilePattern(expr string, stripSource bool) (*regexp.Regexp, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: empty entry pattern", core.ErrPatternCompile)
	}

	body := strings.TrimPrefix(expr, "^")
	anchored := "^(?:" + body + ")"
	if stripSource {
		anchored = "^" + core.SourcePrefixPattern + "(?:" + body + ")"
	}

	re, err := regexp.Compile(anchored)
	if err != nil {
		return nil, fmt.Errorf("%w: entry pattern %q: %v", core.ErrPatternCompile, expr, err)
	}
	return re, nil
}

// HasCapture reports whether re defines the named group.
func HasCapture(re *regexp.Regexp, name string) bool {
	return re.SubexpIndex(name) >= 0
}
