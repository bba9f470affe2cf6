package outline

// OutlineNode is a node in the hierarchical outline. Every child's level is
// strictly deeper than its parent's; sibling order preserves document order.
type OutlineNode struct {
	Level    Level
	Text     string
	Page     int
	Children []*OutlineNode
}

// BuildTree converts the flat, document-ordered candidate sequence into a
// forest of outline nodes using an explicit ancestor stack. For each
// candidate, stack entries whose level is not strictly shallower are popped;
// the candidate then attaches to the new stack top, or becomes a root when
// the stack is empty. A level skip (H1 directly followed by H3) nests the
// deeper heading under the nearest open shallower ancestor; no synthetic
// intermediate node is invented.
func BuildTree(cands []HeadingCandidate) []*OutlineNode {
	var roots []*OutlineNode
	var stack []*OutlineNode

	for _, c := range cands {
		node := &OutlineNode{Level: c.Level, Text: c.Text, Page: c.Page}

		for len(stack) > 0 && stack[len(stack)-1].Level >= node.Level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
		stack = append(stack, node)
	}

	return roots
}

// Entry is one flattened outline row in the externally visible artifact.
type Entry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Metadata carries extraction bookkeeping alongside the outline.
type Metadata struct {
	ProcessingTimeMs int64 `json:"processing_time_ms"`
	TotalPages       int   `json:"total_pages"`
	HeadingsFound    int   `json:"headings_found"`
}

// Artifact is the outline JSON artifact: the document title plus the outline
// rows in pre-order (document) traversal order.
type Artifact struct {
	Title    string   `json:"title"`
	Outline  []Entry  `json:"outline"`
	Metadata Metadata `json:"metadata"`
}

// Flatten walks the forest in pre-order, which reproduces original document
// order for candidates built by BuildTree.
func Flatten(roots []*OutlineNode) []Entry {
	entries := []Entry{}
	var walk func(*OutlineNode)
	walk = func(n *OutlineNode) {
		entries = append(entries, Entry{
			Level: n.Level.String(),
			Text:  n.Text,
			Page:  n.Page,
		})
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return entries
}
