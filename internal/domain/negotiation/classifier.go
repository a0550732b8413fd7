// internal/domain/negotiation/classifier.go
package negotiation

import (
	"regexp"
	"strings"

	"github.com/your-org/store-pilot/internal/pkg/textnorm"
)

// ReasonType is the category of a discount justification
type ReasonType string

const (
	ReasonBirthday ReasonType = "birthday"
	ReasonMultiple ReasonType = "multiple"
	ReasonVIP      ReasonType = "vip"
	ReasonStudent  ReasonType = "student"
	ReasonFirst    ReasonType = "first"
	ReasonLoyalty  ReasonType = "loyalty"
	ReasonDefault  ReasonType = "default"
)

// Classification summarises the signals found in a negotiation request
type Classification struct {
	IsRude      bool       `json:"isRude"`
	IsLowball   bool       `json:"isLowball"`
	ReasonType  ReasonType `json:"reasonType"`
	ReasonScore int        `json:"reasonScore"`
	RudeTerms   []string   `json:"rudeTerms,omitempty"`
}

// RudeTerm is one entry of the rudeness vocabulary. Whole terms only match as
// standalone words; the others match anywhere in the normalized request.
type RudeTerm struct {
	Text  string
	Whole bool
}

// RudeVocabulary is checked against the normalized request. Broad words such
// as "money", "return" and "stop" also trip on polite requests.
var RudeVocabulary = []RudeTerm{
	// insults
	{Text: "idiot"}, {Text: "stupid"}, {Text: "moron"}, {Text: "fool"},
	{Text: "dumb", Whole: true}, {Text: "dumbass"}, {Text: "loser", Whole: true},
	{Text: "jerk", Whole: true}, {Text: "pathetic"}, {Text: "useless"},
	{Text: "worthless"}, {Text: "clown", Whole: true}, {Text: "imbecile"},
	// misspellings
	{Text: "idoit"}, {Text: "idiet"}, {Text: "stoopid"}, {Text: "stupit"},
	{Text: "stuped"}, {Text: "morron"}, {Text: "dumass"}, {Text: "fck"},
	{Text: "fuk"}, {Text: "fuq"}, {Text: "sht", Whole: true}, {Text: "btch"},
	{Text: "azz", Whole: true},
	// profanity
	{Text: "fuck"}, {Text: "shit"}, {Text: "bitch"}, {Text: "bastard"},
	{Text: "damn"}, {Text: "dammit"}, {Text: "piss"}, {Text: "wtf", Whole: true},
	{Text: "stfu", Whole: true}, {Text: "asshole"}, {Text: "ass", Whole: true},
	{Text: "crap", Whole: true}, {Text: "douche"}, {Text: "dick", Whole: true},
	{Text: "prick", Whole: true}, {Text: "hell", Whole: true},
	// aggression
	{Text: "shut up"}, {Text: "screw you"}, {Text: "kill", Whole: true},
	{Text: "hurt you"}, {Text: "punch"}, {Text: "destroy"}, {Text: "or else"},
	{Text: "threat"}, {Text: "hate", Whole: true}, {Text: "stop"},
	// price complaints
	{Text: "ripoff"}, {Text: "rip off"}, {Text: "overpriced"}, {Text: "cheap"},
	{Text: "garbage"}, {Text: "trash"}, {Text: "junk"}, {Text: "rubbish"},
	{Text: "scam"}, {Text: "robbery"}, {Text: "greedy"}, {Text: "ridiculous"},
	{Text: "money"}, {Text: "return"},
	// unethical conduct
	{Text: "steal"}, {Text: "stolen"}, {Text: "fraud"}, {Text: "cheat"},
	{Text: "bribe"}, {Text: "chargeback"}, {Text: "fake review"},
	{Text: "bad review"}, {Text: "sue you"}, {Text: "lawyer"},
	{Text: "report you"}, {Text: "hack", Whole: true},
}

var lowballPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\$\d+\s*(only|just|max)`),
	regexp.MustCompile(`(?i)half\s*price`),
	regexp.MustCompile(`(?i)50\s*percent`),
	regexp.MustCompile(`(?i)free`),
}

type reasonKeywords struct {
	reason   ReasonType
	keywords []string
}

// reasonTable is in priority order: on equal scores the earlier reason wins.
var reasonTable = []reasonKeywords{
	{ReasonBirthday, []string{"birthday", "bday", "born", "turning"}},
	{ReasonMultiple, []string{"two", "three", "multiple", "buying", "several", "both"}},
	{ReasonVIP, []string{"vip", "regular", "customer", "loyal"}},
	{ReasonStudent, []string{"student", "college", "university", "school"}},
	{ReasonFirst, []string{"first", "new", "first time"}},
	{ReasonLoyalty, []string{"loyal", "repeat", "always", "often"}},
}

// Classify inspects a free-text discount request. Rudeness is reported
// alongside the other signals; the calculator gives it precedence.
func Classify(request string) Classification {
	normalized := textnorm.Normalize(request)

	c := Classification{ReasonType: ReasonDefault}

	for _, term := range RudeVocabulary {
		if term.matches(normalized) {
			c.RudeTerms = append(c.RudeTerms, term.Text)
		}
	}
	c.IsRude = len(c.RudeTerms) > 0

	for _, p := range lowballPatterns {
		if p.MatchString(request) {
			c.IsLowball = true
			break
		}
	}

	for _, entry := range reasonTable {
		matches := 0
		for _, kw := range entry.keywords {
			if strings.Contains(normalized, kw) {
				matches++
			}
		}
		if matches > c.ReasonScore {
			c.ReasonScore = matches
			c.ReasonType = entry.reason
		}
	}

	return c
}

func (t RudeTerm) matches(normalized string) bool {
	if t.Whole {
		return textnorm.ContainsWord(normalized, t.Text)
	}
	return strings.Contains(normalized, t.Text)
}
