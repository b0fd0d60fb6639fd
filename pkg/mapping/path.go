package mapping

import "regexp"

// placeholderPattern matches a single `{param}` path template placeholder.
// Each placeholder is replaced on its own, so `/a/{x}/b/{y}` keeps the `/b/`
// segment between two wildcards.
var placeholderPattern = regexp.MustCompile(`\{[^{}]+\}`)

// RewritePath replaces path placeholders with WildcardToken and prepends the
// base path verbatim.
func RewritePath(basePath, path string) string {
	return basePath + placeholderPattern.ReplaceAllLiteralString(path, WildcardToken)
}
