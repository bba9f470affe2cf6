package outline

import (
	"reflect"
	"testing"
)

func cand(level Level, text string, page, idx int) HeadingCandidate {
	return HeadingCandidate{Text: text, Page: page, Level: level, SourceIndex: idx}
}

func checkNesting(t *testing.T, nodes []*OutlineNode, parentLevel Level) {
	t.Helper()
	for _, n := range nodes {
		if n.Level <= parentLevel {
			t.Errorf("node %q level %v not strictly deeper than parent level %v", n.Text, n.Level, parentLevel)
		}
		checkNesting(t, n.Children, n.Level)
	}
}

func TestBuildTree_Nesting(t *testing.T) {
	cands := []HeadingCandidate{
		cand(LevelH1, "Chapter One", 1, 0),
		cand(LevelH2, "Section A", 1, 2),
		cand(LevelH3, "Detail A.1", 2, 4),
		cand(LevelH2, "Section B", 2, 6),
		cand(LevelH1, "Chapter Two", 3, 8),
	}
	roots := BuildTree(cands)

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	checkNesting(t, roots, Level(-1))

	one := roots[0]
	if len(one.Children) != 2 {
		t.Fatalf("expected Chapter One to have 2 children, got %d", len(one.Children))
	}
	if one.Children[0].Text != "Section A" || one.Children[1].Text != "Section B" {
		t.Errorf("sibling order lost: %+v", one.Children)
	}
	if len(one.Children[0].Children) != 1 || one.Children[0].Children[0].Text != "Detail A.1" {
		t.Errorf("H3 not nested under Section A")
	}
}

func TestBuildTree_LevelSkip(t *testing.T) {
	// H1 directly followed by H3: the H3 nests under the H1, no synthetic
	// H2 appears anywhere.
	roots := BuildTree([]HeadingCandidate{
		cand(LevelH1, "Top", 1, 0),
		cand(LevelH3, "Deep", 1, 2),
	})
	if len(roots) != 1 || len(roots[0].Children) != 1 {
		t.Fatalf("unexpected shape: %+v", roots)
	}
	if roots[0].Children[0].Text != "Deep" {
		t.Errorf("expected Deep under Top, got %+v", roots[0].Children[0])
	}
}

func TestBuildTree_DeepBeforeShallow(t *testing.T) {
	// An H2 with no open H1 becomes a root; the later H1 is its sibling.
	roots := BuildTree([]HeadingCandidate{
		cand(LevelH2, "Orphan", 1, 0),
		cand(LevelH1, "Late Chapter", 1, 2),
	})
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].Text != "Orphan" || roots[1].Text != "Late Chapter" {
		t.Errorf("root order lost: %+v", roots)
	}
}

func TestBuildTree_Empty(t *testing.T) {
	if roots := BuildTree(nil); roots != nil {
		t.Errorf("expected nil forest, got %+v", roots)
	}
}

func TestFlatten_PreservesDocumentOrder(t *testing.T) {
	cands := []HeadingCandidate{
		cand(LevelH1, "One", 1, 0),
		cand(LevelH2, "One.A", 1, 1),
		cand(LevelH3, "One.A.i", 1, 2),
		cand(LevelH2, "One.B", 2, 3),
		cand(LevelH1, "Two", 2, 4),
		cand(LevelH3, "Two.deep", 3, 5),
	}
	entries := Flatten(BuildTree(cands))

	if len(entries) != len(cands) {
		t.Fatalf("expected %d entries, got %d", len(cands), len(entries))
	}
	for i, e := range entries {
		if e.Text != cands[i].Text {
			t.Errorf("entry %d: expected %q, got %q", i, cands[i].Text, e.Text)
		}
		if e.Level != cands[i].Level.String() {
			t.Errorf("entry %d: expected level %s, got %s", i, cands[i].Level, e.Level)
		}
		if e.Page != cands[i].Page {
			t.Errorf("entry %d: expected page %d, got %d", i, cands[i].Page, e.Page)
		}
	}
}

func TestFlatten_EmptyForestIsEmptySlice(t *testing.T) {
	entries := Flatten(nil)
	if entries == nil {
		t.Fatal("expected non-nil empty slice so the artifact marshals as []")
	}
	if !reflect.DeepEqual(entries, []Entry{}) {
		t.Errorf("expected empty slice, got %+v", entries)
	}
}
