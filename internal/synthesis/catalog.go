package synthesis

import "sort"

// Category bundles the keywords and phrases of one built-in skip category.
type Category struct {
	Title    string   `json:"name"`
	Keywords []string `json:"keywords"`
	Phrases  []string `json:"phrases"`
}

// Categories is the built-in skip category catalog. It is reference data
// loaded once at startup and never mutated.
var Categories = map[string]Category{
	"advertisements": {
		Title:    "Advertisements",
		Keywords: []string{"sponsor", "sponsored", "ad", "advertisement", "promo", "promotion", "affiliate", "discount code", "coupon"},
		Phrases:  []string{"this video is sponsored by", "today's sponsor", "check out the link", "use my discount code", "affiliate link"},
	},
	"calls_to_action": {
		Title:    "Calls To Action",
		Keywords: []string{"subscribe", "like", "notification", "bell", "share", "comment", "follow", "patreon"},
		Phrases:  []string{"like and subscribe", "hit the notification bell", "don't forget to subscribe", "smash that like button", "ring the bell"},
	},
	"political_content": {
		Title:    "Political Content",
		Keywords: []string{"politics", "political", "democrat", "republican", "liberal", "conservative", "election", "vote", "politician", "government policy"},
		Phrases:  []string{"political views", "my political opinion", "politically speaking", "left wing", "right wing"},
	},
	"negative_content": {
		Title:    "Negative Content",
		Keywords: []string{"drama", "controversy", "hate", "toxic", "negative", "complain", "rant", "angry", "furious", "outrage"},
		Phrases:  []string{"negative things", "bad news", "controversial topic", "hate to say", "really bothers me"},
	},
	"kids_content": {
		Title:    "Kids Content",
		Keywords: []string{"kid", "children", "cartoon", "toy", "playground", "kindergarten", "childish", "baby"},
		Phrases:  []string{"for kids", "children's content", "kid jokes", "silly jokes", "kidding around"},
	},
	"self_promotion": {
		Title:    "Self Promotion",
		Keywords: []string{"merch", "merchandise", "course", "book", "product", "website", "channel", "patreon", "onlyfans"},
		Phrases:  []string{"check out my", "buy my", "my new course", "link in description", "visit my website"},
	},
	"repetitive_content": {
		Title:    "Repetitive Content",
		Keywords: []string{"again", "repeat", "basically", "essentially", "fundamentally", "obviously", "clearly"},
		Phrases:  []string{"as I said before", "like I mentioned", "to reiterate", "once again", "let me repeat"},
	},
	"filler_speech": {
		Title:    "Filler Speech",
		Keywords: []string{"um", "uh", "er", "like", "literally", "actually", "basically", "you know", "sort of", "kind of"},
		Phrases:  []string{"you know what I mean", "if you will", "so to speak", "how do I put this"},
	},
	"technical_jargon": {
		Title:    "Technical Jargon",
		Keywords: []string{"algorithm", "optimization", "parameter", "configuration", "implementation", "debugging", "refactoring"},
		Phrases:  []string{"technical details", "under the hood", "implementation details", "advanced concepts"},
	},
	"personal_stories": {
		Title:    "Personal Stories",
		Keywords: []string{"personal", "story", "experience", "happened", "remember", "childhood", "family"},
		Phrases:  []string{"personal story", "back in my day", "when I was", "my experience", "let me tell you"},
	},
}

// CategoryNames returns the catalog keys in sorted order for stable listings.
func CategoryNames() []string {
	names := make([]string, 0, len(Categories))
	for name := range Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidCategory reports whether name is a known catalog category.
func ValidCategory(name string) bool {
	_, ok := Categories[name]
	return ok
}
