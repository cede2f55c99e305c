package scanner

import "regexp"

// requirePattern is kept identical to the expression used by the first
// version of the tool so both scanners can be compared on the same input.
var requirePattern = regexp.MustCompile(`require\(['"](.+?)['"]\)`)

// Pattern is a purely textual Scanner. It has no notion of comments or string
// literals, so a commented-out require is still reported as a dependency.
type Pattern struct{}

// NewPattern returns the regular expression based scanner.
func NewPattern() *Pattern {
	return &Pattern{}
}

func (*Pattern) Scan(src string) ([]string, error) {
	specs := []string{}
	seen := make(map[string]struct{})
	for _, m := range requirePattern.FindAllStringSubmatch(src, -1) {
		specs = appendUnique(specs, seen, m[1])
	}
	return specs, nil
}
