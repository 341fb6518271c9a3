package wordcloud

import "sort"

// Assembler ranks a word multiset, applies sentiment filtering, truncates to
// the requested limit, and normalizes frequencies.
type Assembler struct {
	tagger *Tagger
}

// NewAssembler creates an assembler using the given tagger
func NewAssembler(tagger *Tagger) *Assembler {
	return &Assembler{tagger: tagger}
}

// Assemble produces the ranked, tagged record list for one multiset.
// Ordering is descending frequency with ties broken by first-encounter order
// during counting. The sentiment filter runs before truncation so a limited
// request still fills up to the limit with matching words.
func (a *Assembler) Assemble(counts *WordCounts, mode Mode, limit int, sentiments []Tag) []WordRecord {
	if counts == nil || counts.Len() == 0 {
		return []WordRecord{}
	}

	records := make([]WordRecord, 0, counts.Len())
	for _, word := range counts.Words() {
		records = append(records, WordRecord{
			Word:      word,
			Frequency: counts.Count(word),
			Sentiment: a.tagger.Tag(word, mode),
			Mode:      mode,
		})
	}

	// stable sort over first-encounter order gives deterministic ties
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Frequency > records[j].Frequency
	})

	if len(sentiments) > 0 {
		wanted := make(map[Tag]bool, len(sentiments))
		for _, s := range sentiments {
			wanted[s] = true
		}
		filtered := records[:0]
		for _, rec := range records {
			if wanted[rec.Sentiment] {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	normalize(records)
	return records
}

// normalize sets each record's normalized frequency relative to the maximum
// frequency in the set; the top record always normalizes to 1.0
func normalize(records []WordRecord) {
	max := 0
	for _, rec := range records {
		if rec.Frequency > max {
			max = rec.Frequency
		}
	}
	if max == 0 {
		return
	}
	for i := range records {
		records[i].NormalizedFrequency = float64(records[i].Frequency) / float64(max)
	}
}
