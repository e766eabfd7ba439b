package triage

import (
	"regexp"
	"strings"
)

// nonWordPattern matches every character that is neither a word character
// nor whitespace. Such characters are replaced with a single space so that
// punctuation never merges adjacent words.
var nonWordPattern = regexp.MustCompile(`[^\w\s]`)

// englishStopwords is the standard English stopword set applied during
// normalization. Tokens in this set carry no diagnostic signal.
var englishStopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		i me my myself we our ours ourselves you your yours yourself
		yourselves he him his himself she her hers herself it its itself
		they them their theirs themselves what which who whom this that
		these those am is are was were be been being have has had having
		do does did doing a an the and but if or because as until while
		of at by for with about against between into through during
		before after above below to from up down in out on off over
		under again further then once here there when where why how all
		any both each few more most other some such no nor not only own
		same so than too very s t can will just don should now d ll m o
		re ve y ain aren couldn didn doesn hadn hasn haven isn ma
		mightn mustn needn shan shouldn wasn weren won wouldn`) {
		englishStopwords[w] = struct{}{}
	}
}

// Normalize lowercases text, collapses punctuation to spaces, tokenizes on
// whitespace, and drops English stopwords. Token order follows input order
// and duplicates are kept; deduplication belongs to extraction. The output
// feeds diagnostics only, downstream matching works on raw text.
func Normalize(text string) []string {
	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), " ")

	fields := strings.Fields(cleaned)
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if _, stop := englishStopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
