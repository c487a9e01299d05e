package similarity

// defaultBonus is the additive score bonus per shared distinctive term.
const defaultBonus = 0.05

// defaultSynonyms collapses pluralization and spelling variants of tokens
// that show up constantly in stationery listings. Both sides of every entry
// must already be normalized (lower-case, alphanumeric).
var defaultSynonyms = map[string]string{
	"notebooks": "notebook",
	"journals":  "notebook",
	"journal":   "notebook",
	"planners":  "planner",
	"inserts":   "insert",
	"refills":   "insert",
	"refill":    "insert",
	"pens":      "pen",
	"pencils":   "pencil",
	"stickers":  "sticker",
	"covers":    "cover",
	"sleeves":   "cover",
	"sleeve":    "cover",
	"notepads":  "notepad",
	"pads":      "notepad",
	"pad":       "notepad",
	"cards":     "card",
	"envelopes": "envelope",
	"tapes":     "tape",
	"charms":    "charm",
	"dotted":    "dot",
	"dots":      "dot",
	"grid":      "grid",
	"gridded":   "grid",
	"hc":        "hardcover",
	"sc":        "softcover",
}

// defaultDistinctive lists terms that, when shared, are strong evidence two
// names describe the same product rather than merely the same category.
var defaultDistinctive = func() map[string]struct{} {
	terms := []string{
		"hardcover", "softcover", "dot", "lined", "blank", "grid",
		"weekly", "daily", "monthly", "undated",
		"a5", "a6", "b5", "b6", "pocket", "personal",
		"leather", "linen", "kraft", "vegan",
		"washi", "fountain", "gel", "brush",
	}
	m := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		m[t] = struct{}{}
	}
	return m
}()
