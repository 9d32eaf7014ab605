package building

import (
	"math"

	"github.com/agext/levenshtein"
	"golang.org/x/text/unicode/norm"
)

// indelParams counts a substitution as one deletion plus one insertion, which
// turns the edit distance into the indel distance behind the classic ratio.
var indelParams = levenshtein.NewParams().SubCost(2)

// PartialRatio scores the best alignment of the shorter string against every
// equally long window of the longer one. A window scores
// 100 * (len(a)+len(b)-indel(a,b)) / (len(a)+len(b)), rounded half to even.
// Either string being empty scores 0.
func PartialRatio(a, b string) int {
	ra := []rune(norm.NFC.String(a))
	rb := []rune(norm.NFC.String(b))
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	shorter, longer := ra, rb
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}

	best := 0.0
	for start := 0; start+len(shorter) <= len(longer); start++ {
		r := ratio(shorter, longer[start:start+len(shorter)])
		if r > best {
			best = r
			if best == 1 {
				break
			}
		}
	}
	return toScore(best)
}

func ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 0
	}
	dist := levenshtein.Distance(string(a), string(b), indelParams)
	return float64(total-dist) / float64(total)
}

func toScore(r float64) int {
	return int(math.RoundToEven(100 * r))
}
