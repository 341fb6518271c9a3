package wordcloud

// Dictionaries supplies every static term list the engine consults. They are
// data, not code: a deployment can load a replacement set from configuration
// without touching the engine. DefaultDictionaries returns the built-in set
// tuned for legal-tech question/response corpora.
type Dictionaries struct {
	// Noise filtering
	NoiseWords      map[string]bool `yaml:"noise_words"`
	LawFirmSuffixes map[string]bool `yaml:"law_firm_suffixes"`

	// Mode extraction
	Verbs        map[string]bool `yaml:"verbs"`
	VerbSuffixes []string        `yaml:"verb_suffixes"`
	Emotions     map[string]bool `yaml:"emotions"`
	Themes       map[string]bool `yaml:"themes"`
	Topics       map[string]bool `yaml:"topics"`
	Entities     map[string]bool `yaml:"entities"`

	// Tagging
	PositiveEmotions map[string]bool `yaml:"positive_emotions"`
	NegativeEmotions map[string]bool `yaml:"negative_emotions"`
	PositiveThemes   map[string]bool `yaml:"positive_themes"`
	NegativeThemes   map[string]bool `yaml:"negative_themes"`
	PositiveActions  map[string]bool `yaml:"positive_actions"`
	NegativeActions  map[string]bool `yaml:"negative_actions"`
}

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// union merges word sets into a fresh set
func union(sets ...map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, s := range sets {
		for w := range s {
			out[w] = true
		}
	}
	return out
}

// DefaultDictionaries returns the built-in dictionary set
func DefaultDictionaries() *Dictionaries {
	positiveEmotions := wordSet(
		"happy", "glad", "pleased", "satisfied", "great", "excellent",
		"good", "wonderful", "amazing", "fantastic", "love", "excited",
		"grateful", "thankful", "relieved", "confident", "hopeful",
		"delighted", "impressed", "comfortable", "positive", "optimistic",
	)
	negativeEmotions := wordSet(
		"angry", "upset", "frustrated", "disappointed", "sad", "worried",
		"anxious", "confused", "annoyed", "stressed", "concerned", "afraid",
		"scared", "unhappy", "terrible", "awful", "horrible", "furious",
		"nervous", "distressed", "overwhelmed", "negative", "hate",
	)
	neutralEmotions := wordSet(
		"calm", "neutral", "indifferent", "curious", "surprised",
		"uncertain", "interested", "patient", "cautious",
	)

	positiveThemes := wordSet(
		"resolution", "settlement", "agreement", "success", "growth",
		"improvement", "collaboration", "innovation", "quality", "trust",
	)
	negativeThemes := wordSet(
		"dispute", "litigation", "breach", "violation", "penalty",
		"complaint", "delay", "failure", "liability", "damage",
	)
	themes := union(positiveThemes, negativeThemes, wordSet(
		// legal
		"contract", "compliance", "regulation", "evidence", "discovery",
		"deposition", "motion", "hearing", "verdict", "appeal", "statute",
		// business
		"revenue", "budget", "strategy", "investment", "merger",
		"acquisition", "partnership", "stakeholder", "forecast",
		// technology
		"software", "platform", "database", "integration", "security",
		"automation", "analytics", "migration", "infrastructure",
		// process
		"workflow", "procedure", "review", "approval", "deadline",
		"milestone", "documentation", "onboarding", "escalation",
		// communication
		"meeting", "email", "report", "presentation", "feedback",
		"negotiation", "correspondence", "notification",
		// service
		"support", "service", "response", "request", "ticket",
		"billing", "subscription", "renewal",
		// healthcare
		"patient", "treatment", "diagnosis", "insurance", "claim",
		"provider", "coverage", "prescription",
	))

	positiveActions := wordSet(
		"resolved", "completed", "approved", "improved", "delivered",
		"achieved", "helped", "supported", "fixed", "succeeded",
	)
	negativeActions := wordSet(
		"failed", "delayed", "rejected", "cancelled", "breached",
		"disputed", "denied", "missed", "blocked", "escalated",
	)

	return &Dictionaries{
		NoiseWords: wordSet(
			// function-word stopwords
			"the", "and", "for", "are", "was", "were", "with", "this",
			"that", "have", "has", "had", "not", "but", "you", "your",
			"our", "their", "they", "them", "from", "will", "would",
			"can", "could", "should", "about", "into", "been", "being",
			"there", "here", "what", "when", "where", "which", "who",
			"how", "all", "any", "some", "its", "his", "her", "than",
			"then", "also", "just", "only", "very", "out",
			// url and markup fragments
			"http", "https", "www", "com", "org", "net", "html", "href",
			"src", "amp", "nbsp",
			// file extensions
			"pdf", "doc", "docx", "xls", "xlsx", "csv", "txt", "jpg",
			"png", "gif", "zip",
			// legal-tech product names
			"clio", "filevine", "casetext", "lexisnexis", "westlaw",
			"mycase", "practicepanther", "smokeball", "litify",
			// residual boilerplate
			"subject", "sent", "dear", "regards", "sincerely", "thanks",
			"please", "hello",
		),
		LawFirmSuffixes: wordSet(
			"llp", "llc", "pllc", "plc", "esq", "pc", "pa", "ltd",
			"associates", "partners", "group",
		),
		Verbs: wordSet(
			"go", "get", "make", "take", "come", "see", "know", "think",
			"want", "give", "use", "find", "tell", "ask", "work", "call",
			"try", "need", "feel", "leave", "put", "mean", "keep", "let",
			"begin", "seem", "help", "talk", "turn", "show", "hear",
			"run", "move", "file", "sign", "pay", "send", "review",
		),
		VerbSuffixes: []string{"ing", "ed", "ize", "ise", "ate", "ify", "en"},
		Emotions: union(positiveEmotions, negativeEmotions, neutralEmotions, wordSet(
			// intensity terms
			"extremely", "urgent", "critical", "severe", "desperate",
			// legal-context emotion terms
			"aggrieved", "wronged", "vindicated", "liable", "culpable",
		)),
		Themes: themes,
		Topics: wordSet(
			"litigation", "discovery", "compliance", "intake",
			"settlement", "deposition", "arbitration", "mediation",
			"paralegal", "retainer", "billing", "timekeeping",
			"automation", "integration", "reporting", "analytics",
			"onboarding", "migration", "conversion", "workflow",
		),
		Entities: wordSet(
			// legal
			"court", "judge", "jury", "plaintiff", "defendant", "counsel",
			"attorney", "firm", "bar", "clerk",
			// business / organization
			"company", "corporation", "client", "vendor", "agency",
			"department", "board", "committee",
			// roles
			"partner", "associate", "paralegal", "manager", "director",
			"officer", "administrator",
		),
		PositiveEmotions: positiveEmotions,
		NegativeEmotions: negativeEmotions,
		PositiveThemes:   positiveThemes,
		NegativeThemes:   negativeThemes,
		PositiveActions:  positiveActions,
		NegativeActions:  negativeActions,
	}
}
