package lm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemory_LearnAndScratch(t *testing.T) {
	m := NewMemory(MemoryOptions{})

	require.NoError(t, m.Learn("<s> hello world"))
	require.NoError(t, m.LearnScratch("hello there"))

	p, s := m.Count("hello")
	require.Equal(t, 1, p)
	require.Equal(t, 1, s)
	require.Equal(t, 1, m.BigramCount(SentenceBegin, "hello"))
	require.Equal(t, 1, m.BigramCount("hello", "there"))

	require.NoError(t, m.ClearScratch())
	_, s = m.Count("hello")
	require.Zero(t, s)
	require.Zero(t, m.BigramCount("hello", "there"))

	_, ok := m.Unigrams()[SentenceBegin]
	require.False(t, ok, "sentence marker is not a word")
	require.Equal(t, 1, m.Bigrams()[Bigram{Prev: "hello", Word: "world"}])
}

func TestMemory_Unavailable(t *testing.T) {
	m := NewMemory(MemoryOptions{})
	m.SetAvailable(false)

	require.True(t, errors.Is(m.Learn("a"), ErrModelUnavailable))
	require.True(t, errors.Is(m.LearnScratch("a"), ErrModelUnavailable))
	require.True(t, errors.Is(m.ClearScratch(), ErrModelUnavailable))

	m.SetAvailable(true)
	require.NoError(t, m.Learn("a"))
}

func TestMemory_Suggest(t *testing.T) {
	m := NewMemory(MemoryOptions{})
	require.NoError(t, m.Learn("hello help helium help"))
	require.NoError(t, m.Learn("say hello"))

	got := m.Suggest("he", 10)
	require.Equal(t, []Suggestion{{"hello", 2}, {"help", 2}, {"helium", 1}}, got)

	// "say" was followed by "hello", which now ranks first.
	got = m.Suggest("say he", 1)
	require.Equal(t, []Suggestion{{"hello", 12}}, got)

	require.Empty(t, m.Suggest("xyz", 5))
}

func TestMemory_SuggestAfterSpaceUsesBigrams(t *testing.T) {
	m := NewMemory(MemoryOptions{})
	require.NoError(t, m.Learn("good morning"))
	require.NoError(t, m.Learn("night"))

	got := m.Suggest("good ", 1)
	require.Equal(t, []Suggestion{{"morning", 11}}, got)
}

func TestMemory_SuggestAccentInsensitive(t *testing.T) {
	strict := NewMemory(MemoryOptions{})
	loose := NewMemory(MemoryOptions{AccentInsensitive: true})
	for _, m := range []*Memory{strict, loose} {
		require.NoError(t, m.Learn("caf\u00e9"))
	}

	require.Empty(t, strict.Suggest("cafe", 5))
	require.Equal(t, []Suggestion{{"caf\u00e9", 1}}, loose.Suggest("cafe", 5))
}

func TestMemory_SuggestFuzzyFallback(t *testing.T) {
	m := NewMemory(MemoryOptions{})
	require.NoError(t, m.Learn("hello world"))

	got := m.Suggest("hlo", 5)
	require.Equal(t, []Suggestion{{"hello", 1}}, got)
}

func TestMemory_AddCounts(t *testing.T) {
	m := NewMemory(MemoryOptions{})
	m.AddCounts(map[string]int{"a": 3}, map[Bigram]int{{Prev: "a", Word: "b"}: 2})
	require.NoError(t, m.Learn("a b"))

	p, _ := m.Count("a")
	require.Equal(t, 4, p)
	require.Equal(t, 3, m.BigramCount("a", "b"))
}

func TestMemory_SuggestKeepsTypedCase(t *testing.T) {
	m := NewMemory(MemoryOptions{})
	require.NoError(t, m.Learn("hello world"))

	require.Equal(t, []Suggestion{{"Hello", 1}}, m.Suggest("He", 5))
	require.Equal(t, []Suggestion{{"HELLO", 1}}, m.Suggest("HEL", 5))
	require.Equal(t, []Suggestion{{"hello", 1}}, m.Suggest("hel", 5))
}
