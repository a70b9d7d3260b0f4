package lm

import "sync"

// Recorder is a Model that records what it was asked to learn. With a
// non-nil Next, calls are forwarded after recording.
type Recorder struct {
	Next Model

	mu          sync.Mutex
	learned     [][]string
	scratch     [][]string
	clears      int
	unavailable bool
}

func (r *Recorder) SetAvailable(ok bool) {
	r.mu.Lock()
	r.unavailable = !ok
	r.mu.Unlock()
}

func (r *Recorder) Tokenize(text string) []Token {
	if r.Next != nil {
		return r.Next.Tokenize(text)
	}
	return Tokenize(text)
}

func (r *Recorder) Learn(tokens string) error {
	r.mu.Lock()
	if r.unavailable {
		r.mu.Unlock()
		return ErrModelUnavailable
	}
	r.learned = append(r.learned, Split(tokens))
	r.mu.Unlock()
	if r.Next != nil {
		return r.Next.Learn(tokens)
	}
	return nil
}

func (r *Recorder) LearnScratch(tokens string) error {
	r.mu.Lock()
	if r.unavailable {
		r.mu.Unlock()
		return ErrModelUnavailable
	}
	r.scratch = append(r.scratch, Split(tokens))
	r.mu.Unlock()
	if r.Next != nil {
		return r.Next.LearnScratch(tokens)
	}
	return nil
}

func (r *Recorder) ClearScratch() error {
	r.mu.Lock()
	if r.unavailable {
		r.mu.Unlock()
		return ErrModelUnavailable
	}
	r.clears++
	r.scratch = nil
	r.mu.Unlock()
	if r.Next != nil {
		return r.Next.ClearScratch()
	}
	return nil
}

// Learned returns every token set passed to Learn, in call order.
func (r *Recorder) Learned() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneSets(r.learned)
}

// Scratch returns the token sets learned into scratch since the last clear.
func (r *Recorder) Scratch() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneSets(r.scratch)
}

func (r *Recorder) ScratchClears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.learned, r.scratch, r.clears = nil, nil, 0
}

func cloneSets(in [][]string) [][]string {
	out := make([][]string, len(in))
	for i, s := range in {
		out[i] = append([]string(nil), s...)
	}
	return out
}
