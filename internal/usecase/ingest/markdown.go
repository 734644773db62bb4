package ingest

import (
	"regexp"
	"strings"
)

// referencesHeading matches a bibliography heading on its own line, with or
// without markdown heading markers. The Korean form appears in the corpora
// this tool was built against.
var referencesHeading = regexp.MustCompile(`(?im)^(#{1,6}\s*)?(references|reference|bibliography|참고문헌)\s*$`)

// stripReferences cuts the references section, from its heading to the end of
// the document. Text without such a heading is returned unchanged.
func stripReferences(markdown string) string {
	loc := referencesHeading.FindStringIndex(markdown)
	if loc == nil {
		return markdown
	}
	return strings.TrimRight(markdown[:loc[0]], "\n")
}
