package content

import "strings"

// JudgmentalAdvisory is shown when a behaviour description uses a label
// instead of describing what was seen or heard. It never blocks submission.
const JudgmentalAdvisory = "You used a judgmental label. Describe exactly what you SEE or HEAR (e.g., 'shouted', 'slammed door')."

var judgmentalTerms = []string{"rude", "mean", "lazy", "brat", "stupid", "aggressive", "attitude"}

// JudgmentalTermList returns the words the checker looks for.
func JudgmentalTermList() []string {
	out := make([]string, len(judgmentalTerms))
	copy(out, judgmentalTerms)
	return out
}

// CheckForJudgmentalLanguage reports whether text contains any judgmental
// word, matched case-insensitively as a substring.
func CheckForJudgmentalLanguage(text string) bool {
	return len(JudgmentalTerms(text)) > 0
}

// JudgmentalTerms returns the judgmental words found in text, in list order.
func JudgmentalTerms(text string) []string {
	lowered := strings.ToLower(text)
	var found []string
	for _, term := range judgmentalTerms {
		if strings.Contains(lowered, term) {
			found = append(found, term)
		}
	}
	return found
}
