package sentiment

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

var (
	tickerRe  = regexp.MustCompile(`\$([a-z]{2,5})\b`)
	priceRe   = regexp.MustCompile(`\$([0-9][0-9,.]*)([km])?\b`)
	percentRe = regexp.MustCompile(`([0-9][0-9.]*)\s*%`)
	punctRe   = regexp.MustCompile(`[.,:;!?]+$`)
)

// negationWindow is how many tokens a negation term flips after itself.
const negationWindow = 3

// normalizeText lowercases, expands emoji into scoreable phrases, and
// rewrites ticker, dollar-amount and percent mentions into stable tokens
// (price_100000, percent_12) so downstream features can key on them.
func normalizeText(text string) string {
	s := strings.ToLower(text)

	for emoji, phrase := range emojiPhrases {
		if strings.Contains(s, emoji) {
			s = strings.ReplaceAll(s, emoji, " "+phrase+" ")
		}
	}

	// Tickers before prices: $btc is a symbol, $85,000 is an amount.
	s = tickerRe.ReplaceAllString(s, " ticker_$1 ")
	s = priceRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := priceRe.FindStringSubmatch(m)
		raw := strings.ReplaceAll(sub[1], ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return m
		}
		switch sub[2] {
		case "k":
			v *= 1_000
		case "m":
			v *= 1_000_000
		}
		return " price_" + strconv.FormatFloat(v, 'f', -1, 64) + " "
	})
	s = percentRe.ReplaceAllString(s, " percent_$1 ")
	return s
}

// tokenize splits the normalized text, strips trailing punctuation (while
// remembering it for negation-window resets) and drops stop words.
func tokenize(s string) []token {
	fields := strings.Fields(s)
	out := make([]token, 0, len(fields))
	for _, f := range fields {
		trimmed := punctRe.ReplaceAllString(f, "")
		punctAfter := trimmed != f
		if trimmed == "" {
			continue
		}
		if stopWords[trimmed] {
			// a stop word still terminates a phrase when punctuated
			if punctAfter && len(out) > 0 {
				out[len(out)-1].punctAfter = true
			}
			continue
		}
		out = append(out, token{text: trimmed, punctAfter: punctAfter})
	}
	return out
}

type token struct {
	text       string
	punctAfter bool
}

// applyNegation prefixes tokens inside a negation window with NOT_. The
// window closes after negationWindow tokens or at punctuation.
func applyNegation(tokens []token) []string {
	out := make([]string, 0, len(tokens))
	remaining := 0
	for i, t := range tokens {
		if i > 0 && tokens[i-1].punctAfter {
			remaining = 0
		}
		word := t.text
		if negationTerms[word] {
			out = append(out, word)
			remaining = negationWindow
			continue
		}
		if remaining > 0 && !strings.HasPrefix(word, "NOT_") {
			word = "NOT_" + word
			remaining--
		}
		out = append(out, word)
	}
	return out
}

type featureKind int

const (
	kindUnigram featureKind = iota
	kindBigram
	kindSignificantBigram
	kindSkipgram
)

type feature struct {
	text string
	kind featureKind
}

// extractFeatures turns negation-resolved tokens into the unigram and
// n-gram feature set. Plain bigrams and skip-bigrams are sampled
// stochastically; significant, high-value and numeric-token pairs always
// survive.
func extractFeatures(tokens []string, cfg Config, rng *rand.Rand) []feature {
	out := make([]feature, 0, len(tokens)*2)
	for _, t := range tokens {
		out = append(out, feature{text: t, kind: kindUnigram})
	}

	for i := 0; i+1 < len(tokens); i++ {
		a, b := tokens[i], tokens[i+1]
		bg := a + " " + b
		switch {
		case significantBigrams[bg]:
			out = append(out, feature{text: bg, kind: kindSignificantBigram})
		case isHighValue(a) || isHighValue(b) || isNumericToken(a) || isNumericToken(b):
			out = append(out, feature{text: bg, kind: kindBigram})
		case rng.Float64() < cfg.BigramSampleP:
			out = append(out, feature{text: bg, kind: kindBigram})
		}
	}

	for i := 0; i+2 < len(tokens); i++ {
		a, b := tokens[i], tokens[i+2]
		if (isHighValue(a) || isHighValue(b)) && rng.Float64() < cfg.SkipgramSampleP {
			out = append(out, feature{text: a + " " + b, kind: kindSkipgram})
		}
	}
	return out
}

func isHighValue(t string) bool {
	return highValueTokens[strings.TrimPrefix(t, "NOT_")]
}

func isNumericToken(t string) bool {
	return strings.HasPrefix(t, "price_") || strings.HasPrefix(t, "percent_")
}

// percentValue parses the numeric part of a percent_N token, 0 if absent.
func percentValue(t string) float64 {
	if !strings.HasPrefix(t, "percent_") {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimPrefix(t, "percent_"), 64)
	if err != nil {
		return 0
	}
	return v
}
