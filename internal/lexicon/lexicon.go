// Package lexicon holds the static keyword tables the scoring engines run
// on: review aspects, German market value signals, influencer niches and
// review risk categories. The tables are loaded once and never mutated.
package lexicon

// Aspect identifies a product-experience dimension of a review.
type Aspect string

const (
	AspectDelivery      Aspect = "delivery"
	AspectQuality       Aspect = "quality"
	AspectAppearance    Aspect = "appearance"
	AspectPackaging     Aspect = "packaging"
	AspectPrice         Aspect = "price"
	AspectService       Aspect = "service"
	AspectSize          Aspect = "size"
	AspectMaterial      Aspect = "material"
	AspectFunctionality Aspect = "functionality"
)

// AspectEntry describes one aspect: its German display label and the
// keywords that signal a sentence talks about it.
type AspectEntry struct {
	Label    string
	Keywords []string
}

// Aspects maps each aspect to its keyword table.
var Aspects = map[Aspect]AspectEntry{
	AspectDelivery: {
		Label:    "Lieferung",
		Keywords: []string{"versand", "lieferung", "lieferzeit", "zustellung", "paket", "dhl", "hermes", "post", "angekommen", "geliefert"},
	},
	AspectQuality: {
		Label:    "Qualität",
		Keywords: []string{"qualität", "verarbeitung", "haltbar", "robust", "stabil", "billig", "minderwertig", "hochwertig"},
	},
	AspectAppearance: {
		Label:    "Aussehen",
		Keywords: []string{"design", "aussehen", "farbe", "optik", "schön", "hässlich", "elegant", "stil", "look"},
	},
	AspectPackaging: {
		Label:    "Verpackung",
		Keywords: []string{"verpackung", "karton", "schutz", "beschädigt", "verpackt", "schachtel", "box"},
	},
	AspectPrice: {
		Label:    "Preis",
		Keywords: []string{"preis", "wert", "günstig", "teuer", "geld", "kosten", "bezahlt", "preiswert", "überteuert"},
	},
	AspectService: {
		Label:    "Kundenservice",
		Keywords: []string{"kundenservice", "service", "kontakt", "antwort", "hilfe", "support", "erreichbar", "freundlich"},
	},
	AspectSize: {
		Label:    "Größe",
		Keywords: []string{"größe", "size", "passt", "klein", "groß", "eng", "weit", "länge", "breite"},
	},
	AspectMaterial: {
		Label:    "Material",
		Keywords: []string{"material", "stoff", "leder", "kunststoff", "metall", "holz", "baumwolle", "polyester"},
	},
	AspectFunctionality: {
		Label:    "Funktionalität",
		Keywords: []string{"funktion", "funktioniert", "funktional", "praktisch", "nützlich", "verwendung", "einfach"},
	},
}

// ValueCategory is one of the brand-value dimensions German consumers
// weigh when judging a shop or an influencer partnership.
type ValueCategory string

const (
	ValueSustainability ValueCategory = "sustainability"
	ValueReliability    ValueCategory = "reliability"
	ValuePriceValue     ValueCategory = "value"
	ValueHonesty        ValueCategory = "honesty"
)

// ValueEntry carries the localized keyword lists for a value category.
// German hits score higher than English ones; Weight is a per-category
// multiplier on top of that.
type ValueEntry struct {
	German  []string
	English []string
	Weight  float64
}

// MarketValues holds the German-market value keyword tables.
var MarketValues = map[ValueCategory]ValueEntry{
	ValueSustainability: {
		German: []string{"nachhaltig", "nachhaltigkeit", "umweltfreundlich", "öko", "bio",
			"klimaneutral", "recycling", "plastikfrei", "fair trade", "grün"},
		English: []string{"sustainable", "eco", "green", "organic", "climate"},
		Weight:  1.5,
	},
	ValueReliability: {
		German: []string{"qualität", "zuverlässig", "hochwertig", "langlebig", "robust",
			"made in germany", "deutsche qualität", "präzision", "sorgfalt"},
		English: []string{"quality", "reliable", "durable", "premium"},
		Weight:  1.3,
	},
	ValuePriceValue: {
		German:  []string{"preis-leistung", "günstig", "sparen", "angebot", "rabatt", "deal"},
		English: []string{"value", "affordable", "deal", "discount"},
		Weight:  1.0,
	},
	ValueHonesty: {
		German: []string{"ehrlich", "test", "erfahrung", "meinung", "review", "bewertung",
			"unboxing", "vergleich"},
		English: []string{"honest", "review", "test", "opinion", "comparison"},
		Weight:  1.2,
	},
}

// Niche is an influencer content vertical.
type Niche string

const (
	NicheFashion Niche = "fashion"
	NicheTech    Niche = "tech"
	NicheBeauty  Niche = "beauty"
	NicheFitness Niche = "fitness"
	NicheFood    Niche = "food"
	NicheHome    Niche = "home"
)

// NicheEntry holds the localized keyword lists for a niche.
type NicheEntry struct {
	German  []string
	English []string
}

// Niches maps each supported vertical to its keyword table.
var Niches = map[Niche]NicheEntry{
	NicheFashion: {
		German:  []string{"mode", "outfit", "style", "kleidung", "fashion", "look", "trend"},
		English: []string{"fashion", "style", "outfit", "ootd", "clothing"},
	},
	NicheTech: {
		German:  []string{"technik", "gadget", "smartphone", "computer", "digital", "app"},
		English: []string{"tech", "gadget", "smartphone", "digital", "app", "software"},
	},
	NicheBeauty: {
		German:  []string{"beauty", "kosmetik", "makeup", "hautpflege", "skincare", "schönheit"},
		English: []string{"beauty", "makeup", "skincare", "cosmetics"},
	},
	NicheFitness: {
		German:  []string{"fitness", "sport", "training", "gesundheit", "workout", "gym"},
		English: []string{"fitness", "workout", "gym", "health", "training"},
	},
	NicheFood: {
		German:  []string{"essen", "kochen", "rezept", "food", "küche", "lecker", "vegan"},
		English: []string{"food", "recipe", "cooking", "foodie", "vegan"},
	},
	NicheHome: {
		German:  []string{"wohnen", "einrichtung", "deko", "interior", "zuhause", "möbel"},
		English: []string{"home", "interior", "decor", "furniture", "living"},
	},
}

// GermanIndicators are standalone German function words used to gauge
// whether content is written in German.
var GermanIndicators = []string{"ich", "und", "der", "die", "das", "ist", "für", "mit"}

// GermanStopwords is the stopword set used by keyword extraction.
var GermanStopwords = map[string]struct{}{
	// articles
	"der": {}, "die": {}, "das": {}, "den": {}, "dem": {}, "des": {},
	"ein": {}, "eine": {}, "einer": {}, "einem": {}, "einen": {}, "eines": {},
	// conjunctions
	"und": {}, "oder": {}, "aber": {}, "doch": {}, "sondern": {}, "denn": {}, "weder": {}, "noch": {},
	// verbs
	"ist": {}, "sind": {}, "war": {}, "waren": {}, "sein": {}, "wird": {}, "werden": {}, "wurde": {}, "wurden": {},
	"hat": {}, "haben": {}, "hatte": {}, "hatten": {}, "bin": {}, "bist": {}, "seid": {},
	// pronouns
	"ich": {}, "du": {}, "er": {}, "sie": {}, "es": {}, "wir": {}, "ihr": {},
	"mein": {}, "dein": {}, "unser": {}, "euer": {}, "meine": {}, "deine": {}, "seine": {},
	"mir": {}, "dir": {}, "ihm": {}, "uns": {}, "euch": {}, "ihnen": {},
	// negation
	"nicht": {}, "kein": {}, "keine": {}, "keiner": {}, "nichts": {}, "nie": {}, "niemals": {},
	// prepositions
	"mit": {}, "bei": {}, "nach": {}, "von": {}, "zu": {}, "aus": {}, "für": {}, "über": {}, "unter": {},
	"vor": {}, "hinter": {}, "neben": {}, "zwischen": {}, "durch": {}, "gegen": {}, "ohne": {}, "um": {},
	// adverbs
	"sehr": {}, "auch": {}, "nur": {}, "schon": {}, "immer": {}, "wieder": {}, "dann": {}, "jetzt": {},
	"hier": {}, "dort": {}, "wo": {}, "wann": {}, "wie": {}, "was": {}, "wer": {}, "warum": {},
	// modal verbs
	"kann": {}, "muss": {}, "soll": {}, "will": {}, "möchte": {}, "darf": {}, "können": {}, "müssen": {},
	// misc
	"ja": {}, "nein": {}, "vielleicht": {}, "mehr": {}, "weniger": {}, "alle": {}, "alles": {},
	"jeder": {}, "jede": {}, "jedes": {}, "dieser": {}, "diese": {}, "dieses": {}, "so": {}, "als": {}, "wenn": {},
}

// PositiveWords and NegativeWords are quick sentiment markers common in
// German e-commerce reviews.
var PositiveWords = []string{
	"super", "toll", "perfekt", "ausgezeichnet", "hervorragend", "fantastisch",
	"wunderbar", "großartig", "empfehlenswert", "zufrieden", "schnell", "pünktlich",
}

var NegativeWords = []string{
	"schlecht", "mangelhaft", "enttäuscht", "kaputt", "defekt", "langsam",
	"teuer", "billig", "schrecklich", "furchtbar", "ärgerlich", "beschädigt",
}

// UmlautReplacements maps German special characters to their ASCII
// transliterations, for matching against transliterated content.
var UmlautReplacements = map[string]string{
	"ä": "ae", "ö": "oe", "ü": "ue",
	"Ä": "Ae", "Ö": "Oe", "Ü": "Ue",
	"ß": "ss",
}
