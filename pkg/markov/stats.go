package markov

import (
	"strings"
)

// ModelStats holds aggregated statistics for a Model.
type ModelStats struct {
	MaxOrder       int   `json:"max_order" yaml:"max_order"`
	BlendWeight    int   `json:"blend_weight" yaml:"blend_weight"`
	Sentences      int64 `json:"sentences" yaml:"sentences"`             // The number of sentences learned.
	VocabSize      int   `json:"vocab_size" yaml:"vocab_size"`           // The number of unique tokens, sentinels included.
	Contexts       int   `json:"contexts" yaml:"contexts"`               // The number of contexts in the link table.
	TotalChains    int   `json:"total_chains" yaml:"total_chains"`       // The number of unique context->next_token links.
	TotalFrequency int   `json:"total_frequency" yaml:"total_frequency"` // The sum of frequencies of all links.
	StartingTokens int   `json:"starting_tokens" yaml:"starting_tokens"` // The number of unique tokens that can start a sentence.
	LongestContext int   `json:"longest_context" yaml:"longest_context"` // The length of the longest recorded context.
}

// Stats returns a snapshot of statistics for the model.
func (m *Model) Stats() ModelStats {
	stats := ModelStats{
		MaxOrder:    m.maxOrder,
		BlendWeight: m.blendWeight,
		Sentences:   m.sentences,
		VocabSize:   len(m.vocab),
		Contexts:    len(m.links),
	}
	for key, d := range m.links {
		stats.TotalChains += len(d.choices)
		stats.TotalFrequency += d.total
		if n := strings.Count(key, " ") + 1; n > stats.LongestContext {
			stats.LongestContext = n
		}
	}
	if d, ok := m.links[string(appendKey(nil, []int{BeginTokenID}))]; ok {
		stats.StartingTokens = len(d.choices)
	}
	return stats
}
