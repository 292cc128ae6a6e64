package native

import (
	"io"
	"strings"
)

const indentUnit = "  "

// String renders the tree rooted at n back to indentation equivalent
// configuration text. Sentinel terminator and separator lines are not
// reproduced; re-lexing the output yields a tree with identical node
// order and content.
func (n *Node) String() string {
	var b strings.Builder
	n.WriteIndented(&b)
	return b.String()
}

// WriteIndented writes the indentation equivalent rendering of the
// tree rooted at n to w.
func (n *Node) WriteIndented(w io.Writer) error {
	return writeChildren(w, n, 0)
}

func writeChildren(w io.Writer, n *Node, depth int) error {
	for _, name := range n.names {
		child := n.index[name]
		line := strings.Repeat(indentUnit, depth) + name
		if child.Text != "" {
			line += " " + child.Text
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
		if err := writeChildren(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
