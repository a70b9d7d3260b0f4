package lm

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []Token
	}{
		{"word1 word2 word3", []Token{{"word1", 0, 5}, {"word2", 6, 11}, {"word3", 12, 17}}},
		{"word1. word2 word3", []Token{{"word1", 0, 5}, {SentenceBegin, 5, 6}, {"word2", 7, 12}, {"word3", 13, 18}}},
		{"Why? Because!", []Token{{"why", 0, 3}, {SentenceBegin, 3, 4}, {"because", 5, 12}}},
		{"see www.example.com now", []Token{{"see", 0, 3}, {"www.example.com", 4, 19}, {"now", 20, 23}}},
		{"don't stop", []Token{{"don't", 0, 5}, {"stop", 6, 10}}},
		{"end.", []Token{{"end", 0, 3}}},
		{"$ git status", []Token{{"git", 2, 5}, {"status", 6, 12}}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := Tokenize(tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("Tokenize(%q)=%v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestTokenize_RuneOffsets(t *testing.T) {
	got := Tokenize("caf\u00e9 \u00fcber")
	want := []Token{{"caf\u00e9", 0, 4}, {"\u00fcber", 5, 9}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tokens=%v, want %v", got, want)
	}
}

func TestJoinSplit(t *testing.T) {
	toks := []string{SentenceBegin, "hello", "world"}
	if got, want := Join(toks), "<s> hello world"; got != want {
		t.Fatalf("join=%q, want %q", got, want)
	}
	if got := Split(Join(toks)); !reflect.DeepEqual(got, toks) {
		t.Fatalf("split=%q, want %q", got, toks)
	}
}

func TestMatchCase(t *testing.T) {
	tests := []struct {
		word, typed, want string
	}{
		{"hello", "he", "hello"},
		{"hello", "He", "Hello"},
		{"hello", "HE", "HELLO"},
		{"hello", "H", "Hello"},
		{"\u00fcber", "\u00dc", "\u00dcber"},
		{"nasa", "NASA", "NASA"},
		{"hello", "", "hello"},
		{"hello", "3D", "hello"},
	}
	for _, tt := range tests {
		if got := MatchCase(tt.word, tt.typed); got != tt.want {
			t.Fatalf("MatchCase(%q, %q)=%q, want %q", tt.word, tt.typed, got, tt.want)
		}
	}
}
