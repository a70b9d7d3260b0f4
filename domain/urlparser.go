package domain

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/iw2rmb/learnspan/internal/textseg"
)

var urlTokenRE = regexp.MustCompile(`[\p{L}\p{N}_-]+|[^\p{L}\p{N}_-]+`)

var (
	urlSchemes   = map[string]bool{"http": true, "https": true, "ftp": true, "file": true}
	urlProtocols = map[string]bool{"mailto": true, "apt": true, "news": true, "tel": true}
)

// URLParser predicts separators for partially typed URLs and file paths.
type URLParser struct {
	// Glob lists files matching a pattern. Default: filepath.Glob.
	Glob func(pattern string) ([]string, error)
	// IsDir reports whether path is a directory. Default: os.Stat.
	IsDir func(path string) bool
}

// Tokenize splits s into alternating word and separator runs.
func (p *URLParser) Tokenize(s string) []string {
	return urlTokenRE.FindAllString(s, -1)
}

func isSeparatorToken(tok string) bool {
	r, _ := utf8.DecodeRuneInString(tok)
	return !textseg.IsWordRune(r) && r != '-'
}

// IsMaybeURL reports whether s starts with a known scheme or protocol
// followed by ':', or is shaped like label.label... ending in a top-level
// domain before the first '/'.
func (p *URLParser) IsMaybeURL(s string) bool {
	toks := p.Tokenize(s)
	if len(toks) == 0 {
		return false
	}
	first := strings.ToLower(toks[0])
	if urlSchemes[first] || urlProtocols[first] {
		return len(toks) >= 2 && strings.HasPrefix(toks[1], ":")
	}

	labels := 0
	last := ""
	for i, tok := range toks {
		if i%2 == 0 {
			if isSeparatorToken(tok) {
				return false
			}
			labels++
			last = tok
			continue
		}
		if strings.HasPrefix(tok, "/") {
			break
		}
		if tok != "." {
			return false
		}
	}
	return labels >= 2 && isTLD(last)
}

// IsMaybeFilename reports whether s looks like a file path.
func (p *URLParser) IsMaybeFilename(s string) bool {
	if strings.HasPrefix(strings.ToLower(s), "file:") {
		return true
	}
	for _, prefix := range []string{"/", "~/", "./", "../"} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

type urlState int

const (
	stateScheme urlState = iota
	stateProtocol
	stateDomain
	statePath
)

// AutoSeparator returns the separator a user would type after context, or
// "" when there is nothing to add. Only file paths consult the filesystem.
func (p *URLParser) AutoSeparator(context string) string {
	toks := p.Tokenize(context)
	if len(toks) == 0 {
		return ""
	}

	state := stateScheme
	i := 0
	for {
		switch state {
		case stateScheme:
			first := strings.ToLower(toks[0])
			switch {
			case urlSchemes[first]:
				if len(toks) == 1 {
					return "://"
				}
				if !strings.HasPrefix(toks[1], ":") {
					return ""
				}
				if first == "file" {
					state = statePath
					continue
				}
				state, i = stateDomain, 2
			case urlProtocols[first]:
				state = stateProtocol
			case isSeparatorToken(first):
				return ""
			default:
				state = stateDomain
			}

		case stateProtocol:
			if len(toks) == 1 {
				return ":"
			}
			return ""

		case stateDomain:
			if i >= len(toks) {
				return ""
			}
			rest := toks[i:]
			for j, tok := range rest {
				if j%2 == 1 && tok != "." {
					if !strings.Contains(tok, "/") {
						// port, user info or query: nothing to predict
						return ""
					}
					state = statePath
					break
				}
			}
			if state == statePath {
				continue
			}
			if len(rest)%2 == 0 {
				// ends in a separator the user already typed
				return ""
			}
			label := strings.ToLower(rest[len(rest)-1])
			if len(rest) > 1 && isTLD(label) && !ambiguousTLDs[label] {
				return "/"
			}
			return "."

		case statePath:
			if strings.HasPrefix(strings.ToLower(context), "file:") {
				return p.fileSeparator(fileURLPath(context))
			}
			return ""
		}
	}
}

func fileURLPath(context string) string {
	rest := context[len("file:"):]
	if strings.HasPrefix(rest, "//") {
		rest = rest[2:]
	}
	return rest
}

// fileSeparator looks at the files starting with path and returns the one
// separator character that follows path in all of them. A directory named
// path wins with "/".
func (p *URLParser) fileSeparator(path string) string {
	if path == "" || strings.HasSuffix(path, "/") {
		return ""
	}
	glob := p.Glob
	if glob == nil {
		glob = filepath.Glob
	}
	isDir := p.IsDir
	if isDir == nil {
		isDir = func(path string) bool {
			fi, err := os.Stat(path)
			return err == nil && fi.IsDir()
		}
	}

	matches, err := glob(globEscape(path) + "*")
	if err != nil || len(matches) == 0 {
		return ""
	}
	seps := make(map[string]bool)
	for _, m := range matches {
		rest := strings.TrimPrefix(m, path)
		if rest == "" {
			if isDir(m) {
				seps["/"] = true
			}
			continue
		}
		r, _ := utf8.DecodeRuneInString(rest)
		if textseg.IsWordRune(r) {
			// the name continues past the typed word
			return ""
		}
		seps[string(r)] = true
	}
	if seps["/"] {
		return "/"
	}
	if len(seps) == 1 {
		for s := range seps {
			return s
		}
	}
	return ""
}

func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
