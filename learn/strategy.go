// Package learn turns tracked spans into token sets and teaches them to the
// language model.
package learn

import (
	"github.com/iw2rmb/learnspan/changes"
	"github.com/iw2rmb/learnspan/config"
	"github.com/iw2rmb/learnspan/domain"
	"github.com/iw2rmb/learnspan/lm"
)

// Strategy tokenizes spans for learning.
type Strategy struct {
	model lm.Model
}

func NewStrategy(model lm.Model) *Strategy {
	return &Strategy{model: model}
}

// LearnTokens returns the token sets to learn for spans.
//
// With a domain, spans are first grown over URLs and paths and merged
// again. Each span contributes the tokens intersecting it. The token just
// before a span is used to join sets of neighbouring spans, and a sentence
// begin there is carried into the set. The first set starts with
// lm.SentenceBegin when beginMarker is set and beginOffset lies between
// the look-back token and the set's first token.
func (s *Strategy) LearnTokens(spans []changes.Span, beginMarker bool, beginOffset int, d domain.Domain) [][]string {
	if d != nil {
		grown := make([]changes.Span, 0, len(spans))
		for _, sp := range spans {
			sp.Pos, sp.Length = d.GrowLearningSpan(sp)
			grown = append(grown, sp)
		}
		spans = changes.ConsolidateSpans(grown)
	} else {
		spans = append([]changes.Span(nil), spans...)
		changes.SortSpans(spans)
	}

	var sets [][]string
	lastEnd := -1
	for _, sp := range spans {
		toks := s.model.Tokenize(sp.Text)
		off := sp.TextPos

		first, last := -1, -1
		for i, t := range toks {
			if sp.Begin() <= t.End+off && sp.End() >= t.Start+off {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
		if first < 0 {
			continue
		}

		var lookBack *lm.Token
		if first > 0 {
			lookBack = &toks[first-1]
		}

		splice := false
		if len(sets) > 0 {
			switch {
			case toks[first].End+off <= lastEnd:
				splice = true
			case lookBack != nil && lookBack.End+off == lastEnd:
				splice = true
			}
		}

		if !splice {
			var set []string
			switch {
			case lookBack != nil && lookBack.IsSentenceBegin():
				set = append(set, lm.SentenceBegin)
			case len(sets) == 0 && beginMarker && !toks[first].IsSentenceBegin():
				lbEnd := -1
				if lookBack != nil {
					lbEnd = lookBack.End + off
				}
				if lbEnd < beginOffset && beginOffset <= toks[first].Start+off {
					set = append(set, lm.SentenceBegin)
				}
			}
			sets = append(sets, set)
		}

		cur := &sets[len(sets)-1]
		for _, t := range toks[first : last+1] {
			if t.End+off <= lastEnd {
				continue
			}
			*cur = append(*cur, t.Text)
		}
		lastEnd = max(lastEnd, toks[last].End+off)
	}

	out := sets[:0]
	for _, set := range sets {
		if hasWord(set) {
			out = append(out, set)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func hasWord(set []string) bool {
	for _, t := range set {
		if t != lm.SentenceBegin {
			return true
		}
	}
	return false
}

// Learn submits each set to the persistent model. It stops at the first
// error and returns how many sets were learned before it.
func (s *Strategy) Learn(sets [][]string) (int, error) {
	for i, set := range sets {
		if err := s.model.Learn(lm.Join(set)); err != nil {
			return i, err
		}
	}
	return len(sets), nil
}

// CanAutoLearn reports whether text typed into d may be learned under cfg.
func CanAutoLearn(cfg config.Learning, d domain.Domain) bool {
	if !cfg.CanAutoLearn() || d == nil {
		return false
	}
	_, password := d.(*domain.Password)
	return !password
}
