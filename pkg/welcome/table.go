// Package welcome holds the reveal-time welcome messages, keyed by guide tone.
package welcome

import (
	"sort"

	"github.com/aretw0/vestibule/pkg/domain"
)

// Fallback is the generic message shown when a guide's tone has no entry.
var Fallback = domain.Message{
	Title: "Welcome, traveler",
	Body:  "Your guide has heard your choice. The road ahead opens now; walk it together.",
}

// Table maps a tone to its fixed title/body pair.
type Table map[domain.Tone]domain.Message

// Default returns the authored table. It covers every known tone.
func Default() Table {
	return Table{
		domain.ToneWarm: {
			Title: "You are home here",
			Body:  "Come in and rest a moment. Whatever brought you to this threshold, you will not cross it alone.",
		},
		domain.TonePoetic: {
			Title: "The page turns",
			Body:  "Every story begins with a blank line. Yours has just been written, and the ink is still wet.",
		},
		domain.ToneStoic: {
			Title: "Hold steady",
			Body:  "The path is long and the weather unkind. Keep your footing; the rest will follow.",
		},
		domain.TonePlayful: {
			Title: "Well, that was quick!",
			Body:  "Good pick. Try not to trip over anything important on the way in. Or do, it's more fun.",
		},
		domain.ToneMysterious: {
			Title: "You were expected",
			Body:  "Not everything here is what it seems. Neither, perhaps, are you.",
		},
	}
}

// Lookup reports the message for tone and whether it was present.
func (t Table) Lookup(tone domain.Tone) (domain.Message, bool) {
	msg, ok := t[tone]
	if !ok || msg.IsZero() {
		return domain.Message{}, false
	}
	return msg, true
}

// Resolve returns the message for tone, or Fallback when the table has no entry.
func (t Table) Resolve(tone domain.Tone) domain.Message {
	if msg, ok := t.Lookup(tone); ok {
		return msg
	}
	return Fallback
}

// Missing lists the tones used by guides that have no entry in the table, sorted.
func (t Table) Missing(guides []domain.Guide) []domain.Tone {
	seen := make(map[domain.Tone]bool)
	var out []domain.Tone
	for _, g := range guides {
		if seen[g.Tone] {
			continue
		}
		seen[g.Tone] = true
		if _, ok := t.Lookup(g.Tone); !ok {
			out = append(out, g.Tone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Merge returns a copy of t with the entries of override applied on top.
func (t Table) Merge(override Table) Table {
	out := make(Table, len(t)+len(override))
	for k, v := range t {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}
