package sentiment

// lexicon maps terms to sentiment weights in [-0.9, 0.9]. Curated for
// crypto news headlines rather than general English.
var lexicon = map[string]float64{
	// strongly positive
	"surge":        0.8,
	"surges":       0.8,
	"surged":       0.8,
	"soar":         0.85,
	"soars":        0.85,
	"soared":       0.85,
	"skyrocket":    0.9,
	"skyrockets":   0.9,
	"moon":         0.7,
	"mooning":      0.75,
	"parabolic":    0.7,
	"breakout":     0.7,
	"rally":        0.7,
	"rallies":      0.7,
	"rallied":      0.7,
	"explode":      0.65,
	"explodes":     0.65,
	"all-time":     0.5,
	"ath":          0.6,
	"record":       0.4,
	"milestone":    0.4,
	"bullish":      0.7,
	"bull":         0.5,
	"accumulate":   0.4,
	"accumulation": 0.4,
	"adoption":     0.5,
	"institutional": 0.3,
	"approval":     0.5,
	"approved":     0.5,
	"inflow":       0.5,
	"inflows":      0.5,
	"buy":          0.3,
	"buying":       0.35,
	"bought":       0.3,
	"hodl":         0.3,
	"gain":         0.5,
	"gains":        0.5,
	"gained":       0.5,
	"climb":        0.5,
	"climbs":       0.5,
	"climbed":      0.5,
	"jump":         0.55,
	"jumps":        0.55,
	"jumped":       0.55,
	"rise":         0.45,
	"rises":        0.45,
	"rose":         0.45,
	"rising":       0.45,
	"rebound":      0.5,
	"rebounds":     0.5,
	"recover":      0.45,
	"recovers":     0.45,
	"recovery":     0.45,
	"optimism":     0.5,
	"optimistic":   0.5,
	"upgrade":      0.4,
	"upside":       0.4,
	"boom":         0.6,
	"strong":       0.35,
	"strength":     0.35,
	"support":      0.2,
	"breakthrough": 0.55,
	"halving":      0.25,
	"scarcity":     0.3,
	"etf":          0.15,
	"greenlight":   0.5,
	"win":          0.4,
	"wins":         0.4,
	"whale":        0.1,
	"bottom":       0.15,
	"undervalued":  0.4,
	"opportunity":  0.3,
	"outperform":   0.45,
	"outperforms":  0.45,
	"profit":       0.4,
	"profits":      0.4,

	// strongly negative
	"crash":        -0.9,
	"crashes":      -0.9,
	"crashed":      -0.9,
	"plunge":       -0.85,
	"plunges":      -0.85,
	"plunged":      -0.85,
	"plummet":      -0.85,
	"plummets":     -0.85,
	"plummeted":    -0.85,
	"collapse":     -0.85,
	"collapses":    -0.85,
	"collapsed":    -0.85,
	"tank":         -0.7,
	"tanks":        -0.7,
	"tanked":       -0.7,
	"dump":         -0.7,
	"dumps":        -0.7,
	"dumped":       -0.7,
	"selloff":      -0.7,
	"sell-off":     -0.7,
	"capitulation": -0.8,
	"bloodbath":    -0.85,
	"rekt":         -0.8,
	"liquidation":  -0.7,
	"liquidations": -0.7,
	"liquidated":   -0.7,
	"bearish":      -0.7,
	"bear":         -0.45,
	"fear":         -0.5,
	"panic":        -0.7,
	"fud":          -0.5,
	"hack":         -0.8,
	"hacked":       -0.8,
	"exploit":      -0.7,
	"exploited":    -0.7,
	"scam":         -0.8,
	"fraud":        -0.8,
	"ponzi":        -0.75,
	"bankruptcy":   -0.85,
	"bankrupt":     -0.85,
	"insolvent":    -0.8,
	"default":      -0.6,
	"lawsuit":      -0.55,
	"sue":          -0.5,
	"sues":         -0.5,
	"sued":         -0.5,
	"ban":          -0.6,
	"bans":         -0.6,
	"banned":       -0.6,
	"crackdown":    -0.6,
	"regulation":   -0.25,
	"regulatory":   -0.25,
	"sec":          -0.15,
	"outflow":      -0.55,
	"outflows":     -0.55,
	"sell":         -0.3,
	"selling":      -0.35,
	"sold":         -0.3,
	"drop":         -0.5,
	"drops":        -0.5,
	"dropped":      -0.5,
	"fall":         -0.5,
	"falls":        -0.5,
	"fell":         -0.5,
	"falling":      -0.5,
	"slide":        -0.5,
	"slides":       -0.5,
	"slid":         -0.5,
	"slump":        -0.55,
	"slumps":       -0.55,
	"slumped":      -0.55,
	"decline":      -0.45,
	"declines":     -0.45,
	"declined":     -0.45,
	"tumble":       -0.6,
	"tumbles":      -0.6,
	"tumbled":      -0.6,
	"sink":         -0.55,
	"sinks":        -0.55,
	"sank":         -0.55,
	"loss":         -0.5,
	"losses":       -0.5,
	"lose":         -0.45,
	"loses":        -0.45,
	"lost":         -0.45,
	"wipe":         -0.6,
	"wipes":        -0.6,
	"wiped":        -0.6,
	"rout":         -0.7,
	"warning":      -0.4,
	"warns":        -0.4,
	"risk":         -0.3,
	"risky":        -0.35,
	"bubble":       -0.5,
	"overvalued":   -0.45,
	"correction":   -0.4,
	"dip":          -0.25,
	"weak":         -0.35,
	"weakness":     -0.35,
	"pressure":     -0.3,
	"uncertainty":  -0.35,
	"volatile":     -0.25,
	"volatility":   -0.2,
	"concern":      -0.35,
	"concerns":     -0.35,
	"worried":      -0.4,
	"worry":        -0.4,
	"trouble":      -0.45,
	"struggle":     -0.4,
	"struggles":    -0.4,
	"halt":         -0.5,
	"halts":        -0.5,
	"halted":       -0.5,
	"freeze":       -0.5,
	"frozen":       -0.5,
	"stolen":       -0.75,
	"theft":        -0.75,
	"breach":       -0.65,
	"delist":       -0.6,
	"delisted":     -0.6,
}

// highValueTokens are terms whose presence upgrades n-gram features and
// raises the Bayes feature weight regardless of lexicon sign.
var highValueTokens = map[string]bool{
	"crash": true, "surge": true, "plunge": true, "soar": true,
	"rally": true, "dump": true, "moon": true, "rekt": true,
	"liquidation": true, "hack": true, "scam": true, "etf": true,
	"halving": true, "ath": true, "capitulation": true, "bloodbath": true,
	"outflow": true, "inflow": true, "bankruptcy": true, "ban": true,
	"breakout": true, "selloff": true, "whale": true, "bullish": true,
	"bearish": true, "fud": true, "fomo": true,
}

// significantBigrams always survive n-gram sampling.
var significantBigrams = map[string]bool{
	"all-time high":   true,
	"all time":        true,
	"time high":       true,
	"bear market":     true,
	"bull market":     true,
	"bull run":        true,
	"death cross":     true,
	"golden cross":    true,
	"etf outflow":     true,
	"etf inflow":      true,
	"etf approval":    true,
	"record outflow":  true,
	"record inflow":   true,
	"price crash":     true,
	"price surge":     true,
	"market crash":    true,
	"flash crash":     true,
	"sell pressure":   true,
	"buy pressure":    true,
	"whale alert":     true,
	"supply shock":    true,
	"short squeeze":   true,
	"long squeeze":    true,
	"margin call":     true,
	"risk off":        true,
	"risk on":         true,
	"capital flight":  true,
	"mass liquidation": true,
}

// negationTerms start a NOT_ window.
var negationTerms = map[string]bool{
	"not": true, "never": true, "no": true, "doesn't": true,
	"doesnt": true, "don't": true, "dont": true, "won't": true,
	"wont": true, "can't": true, "cant": true, "isn't": true,
	"isnt": true, "without": true, "lacking": true, "fails": true,
	"failed": true, "neither": true, "nor": true,
}

// stopWords are dropped before feature extraction. Deliberately small:
// headline vocabulary is already dense.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "to": true,
	"in": true, "on": true, "at": true, "by": true, "for": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"as": true, "its": true, "it's": true, "this": true, "that": true,
	"with": true, "from": true, "has": true, "have": true, "had": true,
	"will": true, "would": true, "and": true, "or": true,
}

// contrastConjunctions flag mixed-signal texts.
var contrastConjunctions = map[string]bool{
	"but": true, "however": true, "despite": true, "while": true,
	"although": true, "though": true, "yet": true,
}

// bullishVocab / bearishVocab detect mixed-signal headlines.
var bullishVocab = map[string]bool{
	"surge": true, "surges": true, "soar": true, "soars": true,
	"rally": true, "rallies": true, "gain": true, "gains": true,
	"rise": true, "rises": true, "jump": true, "jumps": true,
	"bullish": true, "moon": true, "breakout": true, "rebound": true,
	"recovery": true, "climb": true, "climbs": true, "record": true,
}

var bearishVocab = map[string]bool{
	"crash": true, "crashes": true, "plunge": true, "plunges": true,
	"plummet": true, "plummets": true, "dump": true, "dumps": true,
	"fall": true, "falls": true, "fell": true, "drop": true,
	"drops": true, "bearish": true, "selloff": true, "collapse": true,
	"tumble": true, "tumbles": true, "slump": true, "decline": true,
	"declines": true, "loss": true, "losses": true, "outflow": true,
	"outflows": true, "liquidation": true, "liquidations": true,
}

// emojiPhrases expands crypto-Twitter vernacular into scoreable words.
var emojiPhrases = map[string]string{
	"\U0001F680": "bullish rocket",        // 🚀
	"\U0001F315": "moon bullish",          // 🌕
	"\U0001F4C8": "chart rising",          // 📈
	"\U0001F4C9": "chart falling",         // 📉
	"\U0001F525": "hot momentum",          // 🔥
	"\U0001F4B0": "money gains",           // 💰
	"\U0001F4B8": "money losses",          // 💸
	"\U0001F48E": "diamond hands hodl",    // 💎
	"\U0001F9F2": "diamond hands hodl",    // 🧲
	"\U0001F43B": "bear bearish",          // 🐻
	"\U0001F402": "bull bullish",          // 🐂
	"\U0001F40B": "whale accumulation",    // 🐋
	"\U0001F433": "whale accumulation",    // 🐳
	"\U0001F4A5": "crash explosion",       // 💥
	"\U0001F6A8": "warning alert",         // 🚨
	"⚠":     "warning caution",       // ⚠
	"⚠️": "warning caution",     // ⚠️
	"\U0001F631": "panic fear",            // 😱
	"\U0001F628": "panic fear",            // 😨
	"\U0001F602": "laughing dismissive",   // 😂
	"\U0001F911": "greed money",           // 🤑
	"\U0001F621": "angry losses",          // 😡
	"\U0001F622": "sad losses",            // 😢
	"\U0001F62D": "crying losses",         // 😭
	"\U0001F389": "celebration gains",     // 🎉
	"\U0001F3AF": "target hit",            // 🎯
	"\U0001F512": "locked supply scarcity", // 🔒
	"\U0001F4A9": "worthless dump",        // 💩
	"☠":     "dead rekt",             // ☠
	"☠️": "dead rekt",           // ☠️
	"\U0001FA99": "coin bitcoin",          // 🪙
	"₿":     "bitcoin",               // ₿
}
