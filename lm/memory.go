package lm

import (
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/iw2rmb/learnspan/internal/textseg"
)

type MemoryOptions struct {
	// AccentInsensitive makes Suggest match "cafe" to "café".
	AccentInsensitive bool
}

// Bigram is an ordered word pair.
type Bigram struct {
	Prev string
	Word string
}

type counts struct {
	unigrams map[string]int
	bigrams  map[Bigram]int
}

func newCounts() counts {
	return counts{unigrams: make(map[string]int), bigrams: make(map[Bigram]int)}
}

func (c counts) add(tokens []string) {
	prev := ""
	for _, tok := range tokens {
		if tok != SentenceBegin {
			c.unigrams[tok]++
		}
		if prev != "" {
			c.bigrams[Bigram{Prev: prev, Word: tok}]++
		}
		prev = tok
	}
}

// Memory is an in-memory unigram/bigram model with a persistent and a
// scratch namespace. It is safe for concurrent use.
type Memory struct {
	mu          sync.RWMutex
	persistent  counts
	scratch     counts
	opt         MemoryOptions
	unavailable bool
}

func NewMemory(opt MemoryOptions) *Memory {
	return &Memory{persistent: newCounts(), scratch: newCounts(), opt: opt}
}

// SetAvailable toggles whether the model accepts learning.
func (m *Memory) SetAvailable(ok bool) {
	m.mu.Lock()
	m.unavailable = !ok
	m.mu.Unlock()
}

func (m *Memory) Tokenize(text string) []Token { return Tokenize(text) }

func (m *Memory) Learn(tokens string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return ErrModelUnavailable
	}
	m.persistent.add(Split(tokens))
	return nil
}

func (m *Memory) LearnScratch(tokens string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return ErrModelUnavailable
	}
	m.scratch.add(Split(tokens))
	return nil
}

func (m *Memory) ClearScratch() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unavailable {
		return ErrModelUnavailable
	}
	m.scratch = newCounts()
	return nil
}

// Count returns how often word was learned persistently and in scratch.
func (m *Memory) Count(word string) (persistent, scratch int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.persistent.unigrams[word], m.scratch.unigrams[word]
}

// BigramCount returns the combined count of prev followed by word.
func (m *Memory) BigramCount(prev, word string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	k := Bigram{Prev: prev, Word: word}
	return m.persistent.bigrams[k] + m.scratch.bigrams[k]
}

// Unigrams returns a copy of the persistent word counts.
func (m *Memory) Unigrams() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int, len(m.persistent.unigrams))
	for k, v := range m.persistent.unigrams {
		out[k] = v
	}
	return out
}

// Bigrams returns a copy of the persistent pair counts.
func (m *Memory) Bigrams() map[Bigram]int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[Bigram]int, len(m.persistent.bigrams))
	for k, v := range m.persistent.bigrams {
		out[k] = v
	}
	return out
}

// AddCounts merges persistent counts, as loaded from a store.
func (m *Memory) AddCounts(unigrams map[string]int, bigrams map[Bigram]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range unigrams {
		m.persistent.unigrams[k] += v
	}
	for k, v := range bigrams {
		m.persistent.bigrams[k] += v
	}
}

// Suggestion is a predicted word.
type Suggestion struct {
	Word  string
	Score int
}

// Suggest predicts up to limit completions for the word being typed at the
// end of context. Words seen after the previous word rank first. When no
// word starts with the prefix, close fuzzy matches are returned instead.
func (m *Memory) Suggest(context string, limit int) []Suggestion {
	toks := Tokenize(context)
	prefix, typed, prev := "", "", SentenceBegin
	if n := len(toks); n > 0 && toks[n-1].End == len([]rune(context)) && !toks[n-1].IsSentenceBegin() {
		prefix = toks[n-1].Text
		typed = textseg.RuneSlice(context, toks[n-1].Start, toks[n-1].End)
		toks = toks[:n-1]
	}
	if n := len(toks); n > 0 {
		prev = toks[n-1].Text
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	scores := make(map[string]int)
	for _, c := range []counts{m.persistent, m.scratch} {
		for w, n := range c.unigrams {
			scores[w] += n
		}
		for k, n := range c.bigrams {
			if k.Prev == prev {
				scores[k.Word] += 10 * n
			}
		}
	}
	delete(scores, SentenceBegin)

	key := m.fold(prefix)
	var out []Suggestion
	for w, s := range scores {
		if strings.HasPrefix(m.fold(w), key) && w != prefix {
			out = append(out, Suggestion{Word: w, Score: s})
		}
	}
	if len(out) == 0 && len([]rune(prefix)) >= 2 {
		out = m.fuzzySuggest(key, scores)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Word < out[j].Word
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		out[i].Word = MatchCase(out[i].Word, typed)
	}
	return out
}

func (m *Memory) fuzzySuggest(key string, scores map[string]int) []Suggestion {
	words := make([]string, 0, len(scores))
	for w := range scores {
		words = append(words, w)
	}
	sort.Strings(words)
	folded := make([]string, len(words))
	for i, w := range words {
		folded[i] = m.fold(w)
	}

	var out []Suggestion
	for _, match := range fuzzy.Find(key, folded) {
		w := words[match.Index]
		out = append(out, Suggestion{Word: w, Score: scores[w]})
	}
	return out
}

// fold lowercases s and, when accent-insensitive, strips combining marks.
func (m *Memory) fold(s string) string {
	s = strings.ToLower(s)
	if !m.opt.AccentInsensitive {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
