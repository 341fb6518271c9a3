package wordcloud

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	urlPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailPattern   = regexp.MustCompile(`\S+@\S+\.\S+`)
	lawFirmPattern = regexp.MustCompile(`law|legal|attorney|counsel|firm`)
)

// Validator builds per-request blacklists from the static noise dictionaries,
// tenant identifying strings, and caller-supplied exclusions, and filters
// text and assembled word records against them. Both Clean and Validate are
// idempotent.
type Validator struct {
	dicts *Dictionaries
}

// NewValidator creates a validator over the given dictionaries
func NewValidator(dicts *Dictionaries) *Validator {
	return &Validator{dicts: dicts}
}

// blacklist is the per-request reject predicate
type blacklist struct {
	dicts         *Dictionaries
	tenantTokens  map[string]bool
	tenantFields  []string
	exclude       map[string]bool
	include       map[string]bool
	minWordLength int
}

// buildBlacklist assembles the reject predicate for one request
func (v *Validator) buildBlacklist(tenant TenantInfo, req *WordCloudRequest) *blacklist {
	bl := &blacklist{
		dicts:         v.dicts,
		tenantTokens:  make(map[string]bool),
		exclude:       make(map[string]bool),
		minWordLength: req.MinWordLength,
	}
	if bl.minWordLength < 1 {
		bl.minWordLength = 3
	}
	for _, field := range []string{tenant.OrgName, tenant.UserID, tenant.TenantName} {
		field = strings.ToLower(strings.TrimSpace(field))
		if field == "" {
			continue
		}
		bl.tenantFields = append(bl.tenantFields, field)
		for _, tok := range tokenize(field) {
			bl.tenantTokens[strings.ToLower(tok)] = true
		}
	}
	for _, w := range req.ExcludeWords {
		bl.exclude[strings.ToLower(strings.TrimSpace(w))] = true
	}
	if len(req.IncludeWords) > 0 {
		bl.include = make(map[string]bool, len(req.IncludeWords))
		for _, w := range req.IncludeWords {
			bl.include[strings.ToLower(strings.TrimSpace(w))] = true
		}
	}
	return bl
}

// rejects reports whether word must be suppressed. word must already be
// lowercase.
func (bl *blacklist) rejects(word string) bool {
	if bl.include != nil && !bl.include[word] {
		return true
	}
	if len(word) < bl.minWordLength {
		return true
	}
	if bl.exclude[word] || bl.dicts.NoiseWords[word] || bl.dicts.LawFirmSuffixes[word] {
		return true
	}
	if bl.tenantTokens[word] {
		return true
	}
	// dictionary members are exempt from the law-firm heuristic so entity
	// and theme extraction can still surface terms like "counsel"
	if lawFirmPattern.MatchString(word) && !bl.dicts.Themes[word] && !bl.dicts.Entities[word] {
		return true
	}
	for _, field := range bl.tenantFields {
		if strings.Contains(field, word) && len(word) >= 4 {
			return true
		}
	}
	return mostlyNumeric(word)
}

// mostlyNumeric reports whether more than 70% of the runes are digits
func mostlyNumeric(word string) bool {
	if word == "" {
		return true
	}
	digits := 0
	for _, r := range word {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return float64(digits)/float64(len([]rune(word))) > 0.7
}

// Clean strips URLs and email addresses and removes blacklisted tokens from
// raw corpus text before classification. Token case is preserved so the
// entities classifier can still see capitalization; the blacklist check is
// case-insensitive.
func (v *Validator) Clean(text string, tenant TenantInfo, req *WordCloudRequest) string {
	bl := v.buildBlacklist(tenant, req)
	text = urlPattern.ReplaceAllString(text, " ")
	text = emailPattern.ReplaceAllString(text, " ")

	var sb strings.Builder
	sb.Grow(len(text))
	for _, field := range strings.Fields(text) {
		word := strings.Trim(field, ".,;:!?\"'()[]{}")
		if word == "" || bl.rejects(strings.ToLower(word)) {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(field)
	}
	return sb.String()
}

// Validate applies the same blacklist predicate to assembled word records.
// This is the defense-in-depth pass: classifier dictionaries can never
// reintroduce a blacklisted tenant name into the final result.
func (v *Validator) Validate(records []WordRecord, tenant TenantInfo, req *WordCloudRequest) []WordRecord {
	bl := v.buildBlacklist(tenant, req)
	out := make([]WordRecord, 0, len(records))
	for _, rec := range records {
		if bl.rejects(strings.ToLower(rec.Word)) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
