package sentiment

// seedCorpus is the labeled headline set the Naive-Bayes component trains
// on at construction. Small on purpose: the Bayes score only contributes
// 20% of the blend, the lexicon carries the rest.
var seedCorpus = []struct {
	text  string
	label class
}{
	// positive
	{"bitcoin surges past $100K as ETF inflows hit record", classPositive},
	{"bitcoin soars to new all-time high after halving", classPositive},
	{"institutional adoption accelerates as bitcoin rallies 12%", classPositive},
	{"bitcoin ETF approval sparks massive buying spree", classPositive},
	{"whales accumulate as bitcoin breaks out above resistance", classPositive},
	{"bitcoin jumps 8% on strong spot ETF inflows", classPositive},
	{"bitcoin rebounds sharply, bulls target $120K", classPositive},
	{"supply shock looms as exchange balances hit multi-year low", classPositive},
	{"bitcoin climbs as fed signals rate cuts ahead", classPositive},
	{"record inflow week pushes bitcoin toward new highs", classPositive},
	{"bitcoin recovery gains steam, optimism returns to market", classPositive},
	{"golden cross forms as bitcoin rally extends", classPositive},
	{"bitcoin breakout confirmed, analysts see more upside", classPositive},
	{"bull market resumes as bitcoin gains 15% this week", classPositive},
	{"bitcoin rises above $95K milestone on adoption news", classPositive},

	// negative
	{"bitcoin crashes below $80K as panic selling spreads", classNegative},
	{"bitcoin plunges 10% in worst day since the crash", classNegative},
	{"bitcoin ETFs hit by record $1 billion outflow in one day", classNegative},
	{"mass liquidation wipes out $2 billion in leveraged longs", classNegative},
	{"exchange hacked, $600 million in bitcoin stolen", classNegative},
	{"bitcoin tumbles as SEC crackdown fears mount", classNegative},
	{"bear market deepens, bitcoin falls below key support", classNegative},
	{"bitcoin selloff accelerates amid regulatory uncertainty", classNegative},
	{"crypto lender files for bankruptcy, contagion fears grow", classNegative},
	{"bitcoin dumps 8% as whale moves spark panic", classNegative},
	{"flash crash rout wipes billions from crypto market", classNegative},
	{"bitcoin slides under $85K, capitulation warnings flash", classNegative},
	{"outflows continue as bitcoin fails to hold support", classNegative},
	{"bitcoin collapses, fear grips market after scam revelations", classNegative},
	{"miners sell off holdings as bitcoin sinks to monthly low", classNegative},
	{"bitcoin drops sharply, death cross signals more pain ahead", classNegative},

	// neutral
	{"bitcoin trades sideways as market awaits fed decision", classNeutral},
	{"bitcoin holds steady near $90K ahead of options expiry", classNeutral},
	{"analysts split on bitcoin's next move after quiet week", classNeutral},
	{"bitcoin volume declines as traders await catalyst", classNeutral},
	{"bitcoin consolidates in narrow range for third day", classNeutral},
	{"miners adjust operations following difficulty change", classNeutral},
	{"bitcoin unchanged as traditional markets close for holiday", classNeutral},
	{"study examines bitcoin energy usage trends", classNeutral},
	{"bitcoin futures open interest flat week over week", classNeutral},
	{"exchange announces updated fee schedule for traders", classNeutral},
	{"bitcoin hashrate steady despite seasonal variations", classNeutral},
	{"survey finds mixed views on crypto regulation timeline", classNeutral},
}
