package wordcloud

// Tagger maps a (word, mode) pair onto the small fixed tag vocabulary. Pure
// and deterministic; safe for concurrent use.
type Tagger struct {
	dicts *Dictionaries
}

// NewTagger creates a tagger over the given dictionaries
func NewTagger(dicts *Dictionaries) *Tagger {
	return &Tagger{dicts: dicts}
}

// Tag returns the sentiment or category tag for word under mode
func (t *Tagger) Tag(word string, mode Mode) Tag {
	switch mode {
	case ModeEmotions:
		if t.dicts.PositiveEmotions[word] {
			return TagPositive
		}
		if t.dicts.NegativeEmotions[word] {
			return TagNegative
		}
		return TagNeutral
	case ModeThemes:
		if t.dicts.PositiveThemes[word] {
			return TagPositive
		}
		if t.dicts.NegativeThemes[word] {
			return TagNegative
		}
		return TagTheme
	case ModeTopics:
		return TagTopic
	case ModeEntities:
		return TagEntity
	case ModeVerbs:
		if t.dicts.PositiveActions[word] {
			return TagPositive
		}
		if t.dicts.NegativeActions[word] {
			return TagNegative
		}
		return TagAction
	default:
		return TagNeutral
	}
}
