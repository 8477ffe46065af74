package similarity

import (
	"fmt"
	"strings"
)

// Explain renders a human-readable reason a match was recommended. Pure
// presentation over the already-computed score; it takes no part in ranking.
func Explain(match Match) string {
	var desc string
	switch {
	case match.Score > 0.9:
		desc = "very similar"
	case match.Score > 0.8:
		desc = "quite similar"
	case match.Score > 0.7:
		desc = "somewhat similar"
	default:
		desc = "related"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "This post is %s to your experience ", desc)

	if match.HasPositiveResolution {
		b.WriteString("and has received helpful responses from the community.")
	} else {
		b.WriteString("and others are going through something similar.")
	}

	if match.ResponseCount > 0 {
		fmt.Fprintf(&b, " It has %d supportive responses.", match.ResponseCount)
	}

	return b.String()
}
