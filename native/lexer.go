package native

import (
	"bufio"
	"fmt"
	"strings"
	"unicode"

	"github.com/andaru/yangmap/maperr"
)

const defaultTabWidth = 8

type config struct {
	terminators map[string]bool
	separators  map[string]bool
	tabWidth    int
}

// Option is a lexer option function
type Option func(*config)

// WithTerminators sets the scope terminator sentinel words. A line
// consisting of a single terminator word closes the enclosing scope
// and creates no node. The default terminator is "exit".
func WithTerminators(words ...string) Option {
	return func(c *config) { c.terminators = wordSet(words) }
}

// WithSeparators sets the separator sentinel words. A line consisting
// of a single separator word is skipped and creates no node. The
// defaults are "!" (the block separator) and "end" (which returns
// unconditionally to the top level, already closed by indentation).
func WithSeparators(words ...string) Option {
	return func(c *config) { c.separators = wordSet(words) }
}

// WithTabWidth sets the number of indentation columns a tab counts
// for. The default is 8.
func WithTabWidth(w int) Option {
	return func(c *config) { c.tabWidth = w }
}

func wordSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// line is one significant input line, pre-scanned for indentation
// depth and sentinel classification.
type line struct {
	num     int
	depth   int
	content string
	words   []string
	sep     bool
	term    bool
}

// Parse lexes indentation structured configuration text into a
// generic ordered tree, returning the synthetic root node.
//
// Lines opening a nested block contribute one tree level per token,
// so "interface Fa1" opens the scope root -> "interface" -> "Fa1";
// repeated openers sharing a leading token merge into the existing
// intermediate node, which is what lets sibling interfaces coexist
// under one "interface" entry. Lines with no nested children become
// leaf nodes keyed by their first token, carrying the remainder of
// the line as Text, or Standalone when bare.
func Parse(text string, opts ...Option) (*Node, error) {
	cfg := &config{
		terminators: wordSet([]string{"exit"}),
		separators:  wordSet([]string{"!", "end"}),
		tabWidth:    defaultTabWidth,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	lines, err := scan(text, cfg)
	if err != nil {
		return nil, err
	}

	root := &Node{}
	type frame struct {
		depth int
		node  *Node
	}
	stack := []frame{{depth: -1, node: root}}

	for i, ln := range lines {
		// close scopes opened at or beyond this line's depth
		for len(stack) > 1 && stack[len(stack)-1].depth >= ln.depth {
			stack = stack[:len(stack)-1]
		}
		switch {
		case ln.sep:
			continue
		case ln.term:
			if len(stack) == 1 {
				return nil, maperr.Lex(maperr.WithMessage(fmt.Sprintf(
					"line %d: %q closes a scope that was never opened", ln.num, ln.content)))
			}
			stack = stack[:len(stack)-1]
			continue
		}

		parent := stack[len(stack)-1].node
		if i+1 < len(lines) && lines[i+1].depth > ln.depth {
			// block opener: one tree level per token
			node := parent
			for _, w := range ln.words[:len(ln.words)-1] {
				node = node.ensure(w)
			}
			scope := &Node{}
			node.put(ln.words[len(ln.words)-1], scope)
			stack = append(stack, frame{depth: ln.depth, node: scope})
			continue
		}

		key, rest := splitKeyword(ln.content)
		parent.put(key, &Node{Text: rest, Standalone: rest == ""})
	}
	return root, nil
}

func scan(text string, cfg *config) ([]line, error) {
	var lines []line
	num := 0
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		num++
		raw := scanner.Text()
		content := strings.TrimLeft(raw, " \t")
		if content == "" {
			continue
		}
		content = strings.TrimRight(content, " \t")
		ln := line{
			num:     num,
			depth:   measureIndent(raw[:len(raw)-len(strings.TrimLeft(raw, " \t"))], cfg.tabWidth),
			content: content,
			words:   strings.Fields(content),
		}
		if len(ln.words) == 1 {
			ln.sep = cfg.separators[ln.words[0]]
			ln.term = cfg.terminators[ln.words[0]]
		}
		lines = append(lines, ln)
	}
	if err := scanner.Err(); err != nil {
		return nil, maperr.Lex(maperr.WithMessage(err.Error()))
	}
	return lines, nil
}

func measureIndent(ws string, tabWidth int) int {
	depth := 0
	for _, r := range ws {
		switch {
		case r == '\t':
			depth += tabWidth
		case unicode.IsSpace(r):
			depth++
		}
	}
	return depth
}

func splitKeyword(content string) (key, rest string) {
	if i := strings.IndexFunc(content, unicode.IsSpace); i >= 0 {
		return content[:i], strings.TrimSpace(content[i:])
	}
	return content, ""
}
