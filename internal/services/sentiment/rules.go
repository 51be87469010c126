package sentiment

import (
	"regexp"
	"strings"

	"github.com/ciphernom/rektcast/internal/domain/models"
)

const (
	movementPatternScale = 1.5
	strongPatternScale   = 2.0
	contextWeight        = 2.0
)

type pattern struct {
	re     *regexp.Regexp
	weight float64
}

// movementPatterns catch generic price-action phrasing; weights are
// pre-scaled by movementPatternScale.
var movementPatterns = []pattern{
	{regexp.MustCompile(`(surge|soar|jump|rall(y|ie)|climb|spike)\w*\s+(past|above|to|toward|over)`), 0.7 * movementPatternScale},
	{regexp.MustCompile(`(fall|drop|plunge|sink|slide|tumble|crash|slump)\w*\s+(below|under|to|past|through)`), -0.7 * movementPatternScale},
	{regexp.MustCompile(`\bup\s+[0-9.]+%`), 0.5 * movementPatternScale},
	{regexp.MustCompile(`\bdown\s+[0-9.]+%`), -0.5 * movementPatternScale},
	{regexp.MustCompile(`new\s+(all.time\s+)?high`), 0.8 * movementPatternScale},
	{regexp.MustCompile(`(record|multi.year|monthly|yearly)\s+low`), -0.7 * movementPatternScale},
	{regexp.MustCompile(`(break|broke|breaking)\w*\s+(out|above|resistance)`), 0.6 * movementPatternScale},
	{regexp.MustCompile(`(lose|loses|lost|losing)\s+(ground|support|steam)`), -0.5 * movementPatternScale},
	{regexp.MustCompile(`(gain|add)\w*\s+[0-9.]+%`), 0.5 * movementPatternScale},
	{regexp.MustCompile(`(shed|erase|wipe)\w*\s+[0-9.]+%`), -0.6 * movementPatternScale},
}

// strongPatterns are headline-specific signals that dominate when present;
// weights are pre-scaled by strongPatternScale.
var strongPatterns = []pattern{
	{regexp.MustCompile(`etf\w*\s+.*\boutflow`), -0.7 * strongPatternScale},
	{regexp.MustCompile(`\boutflow\w*\s+.*\betf`), -0.7 * strongPatternScale},
	{regexp.MustCompile(`etf\w*\s+.*\binflow`), 0.6 * strongPatternScale},
	{regexp.MustCompile(`(hack|hacked|exploit|stolen|theft|breach)`), -0.8 * strongPatternScale},
	{regexp.MustCompile(`(scam|fraud|ponzi|rug\s*pull)`), -0.8 * strongPatternScale},
	{regexp.MustCompile(`bear\s+market`), -0.6 * strongPatternScale},
	{regexp.MustCompile(`bull\s+(market|run)`), 0.6 * strongPatternScale},
	{regexp.MustCompile(`(bankrupt|insolven|liquidat)\w*\s+(filing|files|proceedings)?`), -0.7 * strongPatternScale},
	{regexp.MustCompile(`(panic|capitulat)\w*`), -0.7 * strongPatternScale},
	{regexp.MustCompile(`record\s+.*(outflow|selloff|liquidation)`), -0.8 * strongPatternScale},
	{regexp.MustCompile(`record\s+.*(inflow|purchase|buying)`), 0.7 * strongPatternScale},
	{regexp.MustCompile(`(sec|regulator)\w*\s+.*(crackdown|lawsuit|charges|sues)`), -0.7 * strongPatternScale},
}

var (
	dollarAmountRe = regexp.MustCompile(`\$[0-9][0-9,.]*\s*(k|m|b|million|billion|trillion)?`)
	fallVerbRe     = regexp.MustCompile(`(fall|falls|fell|drop|drops|dropped|plunge|plunges|plunged|sink|sinks|sank|slide|slides|slid|dip|dips|dipped|crash|crashes|crashed)`)
	subPriceRe     = regexp.MustCompile(`(below|under)\s+\$[0-9]`)
	predictiveRe   = regexp.MustCompile(`(could|may|might|expected to|predicted to|forecast to|on track to)\s+(hit|reach|touch|test)`)
	wipeRoutRe     = regexp.MustCompile(`(wipe|wipes|wiped|rout|erases?)`)
	plungeRe       = regexp.MustCompile(`plung\w*`)
	liquidationRe  = regexp.MustCompile(`liquidat\w*`)
)

// scoreRules runs the lexicon, the regex pattern sets and the hand-coded
// heuristics over one text. tokens are negation-resolved; raw is the
// lowercased original. Returns the clamped score and the accumulated match
// weight used for blending with the market-context adjustment.
func scoreRules(raw string, tokens []string) (score, matches float64) {
	var sum float64

	for _, t := range tokens {
		base := t
		negated := strings.HasPrefix(t, "NOT_")
		if negated {
			base = strings.TrimPrefix(t, "NOT_")
		}
		w, ok := lexicon[base]
		if !ok {
			continue
		}
		if negated {
			w = -w
		}
		sum += w
		matches++
	}

	for _, p := range movementPatterns {
		if p.re.MatchString(raw) {
			sum += p.weight
			matches++
		}
	}
	for _, p := range strongPatterns {
		if p.re.MatchString(raw) {
			sum += p.weight
			matches++
		}
	}

	sum, matches = applyHeuristics(raw, sum, matches)

	return clamp(sum/maxF(matches, 1), -1, 1), matches
}

// applyHeuristics layers hand-coded boosts and penalties that single
// patterns miss. Each fired heuristic also counts as a match.
func applyHeuristics(raw string, sum, matches float64) (float64, float64) {
	hit := func(delta float64) {
		sum += delta
		matches++
	}

	hasDollar := dollarAmountRe.MatchString(raw)
	hasFall := fallVerbRe.MatchString(raw)

	// co-mentions of liquidation and the broad market read as cascade risk
	if liquidationRe.MatchString(raw) && strings.Contains(raw, "market") {
		hit(-1.0)
	}
	// contrast conjunction next to negative vocabulary leans negative
	if containsContrast(raw) && hasFall {
		hit(-0.5)
	}
	// "below $X" with a fall verb is a broken support level
	if subPriceRe.MatchString(raw) && hasFall {
		hit(-1.2)
	}
	// "wiped $2B" style phrasing
	if wipeRoutRe.MatchString(raw) && hasDollar {
		hit(-1.4)
	}
	// plunge in any inflection is decisive in headlines
	if plungeRe.MatchString(raw) {
		hit(-1.2)
	}
	// predictive upside phrasing with a price target
	if predictiveRe.MatchString(raw) && hasDollar {
		hit(0.8)
	}
	// big-number outflow phrasing
	if strings.Contains(raw, "outflow") && hasDollar {
		hit(-1.4)
	}
	// big-number inflow phrasing
	if strings.Contains(raw, "inflow") && hasDollar {
		hit(1.0)
	}
	// all-time-high mentions without a fall verb
	if (strings.Contains(raw, "all-time high") || strings.Contains(raw, "all time high")) && !hasFall {
		hit(1.2)
	}
	// fear-and-greed style panic words alongside percentages
	if percentRe.MatchString(raw) && (strings.Contains(raw, "panic") || strings.Contains(raw, "fear")) {
		hit(-0.8)
	}

	return sum, matches
}

func containsContrast(raw string) bool {
	for _, f := range strings.Fields(raw) {
		if contrastConjunctions[strings.Trim(f, ".,:;!?")] {
			return true
		}
	}
	return false
}

// adjustForTrend nudges the rule score toward what the market is actually
// doing. The adjustment is blended by match weight so strongly-matched
// texts move less.
func adjustForTrend(ruleScore, matches float64, trend *models.PriceTrendSummary) float64 {
	if trend == nil {
		return ruleScore
	}

	var adj float64
	switch trend.Direction {
	case models.TrendBullish:
		adj += 0.3
	case models.TrendBearish:
		adj -= 0.3
	}
	if trend.IsLocalHigh && !trend.IsAllTimeHigh {
		adj -= 0.15 // toppy, profit-taking fear
	}
	if trend.IsLocalLow {
		adj -= 0.2
	}
	if trend.IsAllTimeHigh {
		adj += 0.25
	}
	adj += clamp(trend.LongTermChange/200, -0.25, 0.25)
	if trend.Volatility > 0 && trend.RecentVolatility > 1.5*trend.Volatility {
		adj *= 1.3 // volatile regimes amplify whatever the trend says
	}
	adj = clamp(adj, -1, 1)

	return (ruleScore*matches + adj*contextWeight) / (matches + contextWeight)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
