package wordcloud

import (
	"regexp"
	"strings"
)

// WordCounts is a multiset of words that remembers first-encounter order so
// that ranking ties can be broken deterministically.
type WordCounts struct {
	counts map[string]int
	order  []string
}

// NewWordCounts creates an empty multiset
func NewWordCounts() *WordCounts {
	return &WordCounts{counts: make(map[string]int)}
}

// Add increments the count for a word
func (wc *WordCounts) Add(word string, n int) {
	if n <= 0 {
		return
	}
	if _, seen := wc.counts[word]; !seen {
		wc.order = append(wc.order, word)
	}
	wc.counts[word] += n
}

// Count returns the count for a word, zero if absent
func (wc *WordCounts) Count(word string) int {
	return wc.counts[word]
}

// Len returns the number of distinct words
func (wc *WordCounts) Len() int {
	return len(wc.order)
}

// Words returns the distinct words in first-encounter order
func (wc *WordCounts) Words() []string {
	return wc.order
}

// Merge adds every count from other into wc. Words new to wc keep the
// encounter order of the merge.
func (wc *WordCounts) Merge(other *WordCounts) {
	if other == nil {
		return
	}
	for _, w := range other.order {
		wc.Add(w, other.counts[w])
	}
}

// Classifier extracts a word multiset from raw text for one analysis mode.
// Implementations must be pure functions over their input: no shared mutable
// state, safe for concurrent invocation from the partitioner.
type Classifier interface {
	Extract(text string) *WordCounts
}

// Registry maps analysis modes to classifiers. Unknown modes fall back to
// the "all" classifier.
type Registry struct {
	classifiers map[Mode]Classifier
	fallback    Classifier
}

// NewRegistry builds the registry with the six standard modes backed by the
// supplied dictionaries.
func NewRegistry(dicts *Dictionaries) *Registry {
	all := &allClassifier{}
	return &Registry{
		fallback: all,
		classifiers: map[Mode]Classifier{
			ModeAll:      all,
			ModeVerbs:    &verbClassifier{dicts: dicts},
			ModeEmotions: &dictClassifier{words: dicts.Emotions},
			ModeThemes:   &dictClassifier{words: dicts.Themes},
			ModeTopics:   &topicClassifier{dicts: dicts},
			ModeEntities: &entityClassifier{dicts: dicts},
		},
	}
}

// Classify extracts the word multiset for the given mode
func (r *Registry) Classify(text string, mode Mode) *WordCounts {
	c, ok := r.classifiers[mode]
	if !ok {
		c = r.fallback
	}
	return c.Extract(text)
}

var (
	tokenPattern     = regexp.MustCompile(`[a-zA-Z]+`)
	capitalizedToken = regexp.MustCompile(`^[A-Z][a-z]{2,}$`)
)

// tokenize returns the alphabetic tokens of text with original casing
func tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// allClassifier counts every lowercase alphabetic token of length >= 3
type allClassifier struct{}

func (c *allClassifier) Extract(text string) *WordCounts {
	counts := NewWordCounts()
	for _, tok := range tokenize(text) {
		word := strings.ToLower(tok)
		if len(word) < 3 {
			continue
		}
		counts.Add(word, 1)
	}
	return counts
}

// verbClassifier counts tokens that carry a verb suffix or belong to the
// closed-class verb dictionary
type verbClassifier struct {
	dicts *Dictionaries
}

func (c *verbClassifier) Extract(text string) *WordCounts {
	counts := NewWordCounts()
	for _, tok := range tokenize(text) {
		word := strings.ToLower(tok)
		if len(word) < 3 {
			continue
		}
		if c.dicts.Verbs[word] || c.hasVerbSuffix(word) {
			counts.Add(word, 1)
		}
	}
	return counts
}

func (c *verbClassifier) hasVerbSuffix(word string) bool {
	for _, suffix := range c.dicts.VerbSuffixes {
		// suffix match alone over-captures short words ("red", "ring")
		if len(word) > len(suffix)+2 && strings.HasSuffix(word, suffix) {
			return true
		}
	}
	return false
}

// dictClassifier counts tokens present in a fixed dictionary; used for the
// emotions and themes modes
type dictClassifier struct {
	words map[string]bool
}

func (c *dictClassifier) Extract(text string) *WordCounts {
	counts := NewWordCounts()
	for _, tok := range tokenize(text) {
		word := strings.ToLower(tok)
		if c.words[word] {
			counts.Add(word, 1)
		}
	}
	return counts
}

// topicClassifier counts dictionary topics plus any long token, a heuristic
// that catches domain jargon missing from the dictionary
type topicClassifier struct {
	dicts *Dictionaries
}

func (c *topicClassifier) Extract(text string) *WordCounts {
	counts := NewWordCounts()
	for _, tok := range tokenize(text) {
		word := strings.ToLower(tok)
		if c.dicts.Topics[word] || (len(word) > 8 && !c.dicts.NoiseWords[word]) {
			counts.Add(word, 1)
		}
	}
	return counts
}

// entityClassifier counts capitalized tokens and dictionary entity terms,
// case-folded in the output
type entityClassifier struct {
	dicts *Dictionaries
}

func (c *entityClassifier) Extract(text string) *WordCounts {
	counts := NewWordCounts()
	for _, tok := range tokenize(text) {
		word := strings.ToLower(tok)
		if capitalizedToken.MatchString(tok) || c.dicts.Entities[word] {
			if len(word) < 3 {
				continue
			}
			counts.Add(word, 1)
		}
	}
	return counts
}
