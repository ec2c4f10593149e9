package builder

import "testing"

func sectionIDs(doc *Document) []string {
	ids := make([]string, len(doc.Sections))
	for i, sec := range doc.Sections {
		ids[i] = sec.ID
	}
	return ids
}

func fieldIDs(sec *Section) []string {
	ids := make([]string, len(sec.Fields))
	for i, f := range sec.Fields {
		ids[i] = f.ID
	}
	return ids
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func samePermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int)
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		seen[id]--
	}
	for _, n := range seen {
		if n != 0 {
			return false
		}
	}
	return true
}

func TestMoveSectionSpliceSemantics(t *testing.T) {
	doc := mustNewDoc(t)
	before := sectionIDs(doc)

	// move first section onto the third: it lands immediately before the
	// element that was at the target index after removal
	doc.MoveSection(before[0], before[2])
	after := sectionIDs(doc)

	want := []string{before[1], before[2], before[0], before[3], before[4], before[5]}
	if !sameOrder(after, want) {
		t.Fatalf("splice order mismatch:\n got %v\nwant %v", after, want)
	}
}

func TestMoveSectionBackward(t *testing.T) {
	doc := mustNewDoc(t)
	before := sectionIDs(doc)

	doc.MoveSection(before[4], before[1])
	after := sectionIDs(doc)

	want := []string{before[0], before[4], before[1], before[2], before[3], before[5]}
	if !sameOrder(after, want) {
		t.Fatalf("splice order mismatch:\n got %v\nwant %v", after, want)
	}
}

func TestMoveSectionSelfDropIsNoop(t *testing.T) {
	doc := mustNewDoc(t)
	before := sectionIDs(doc)

	doc.MoveSection(before[2], before[2])
	if !sameOrder(sectionIDs(doc), before) {
		t.Fatalf("self drop must not change order")
	}
}

func TestMoveSectionStaleIDIsNoop(t *testing.T) {
	doc := mustNewDoc(t)
	before := sectionIDs(doc)

	doc.MoveSection("stale", before[0])
	doc.MoveSection(before[0], "stale")
	if !sameOrder(sectionIDs(doc), before) {
		t.Fatalf("stale id drop must not change order")
	}
}

func TestMoveSectionIsPermutation(t *testing.T) {
	doc := mustNewDoc(t)
	before := sectionIDs(doc)

	doc.MoveSection(before[5], before[0])
	doc.MoveSection(before[3], before[5])
	doc.MoveSection(before[0], before[2])

	after := sectionIDs(doc)
	if !samePermutation(before, after) {
		t.Fatalf("reorder must be a permutation:\nbefore %v\nafter  %v", before, after)
	}
	assertUniqueIDs(t, doc)
}

func TestMoveFieldWithinSection(t *testing.T) {
	doc := mustNewDoc(t)
	sec := &doc.Sections[0] // Basic Information has 5 fields
	before := fieldIDs(sec)

	doc.MoveField(sec.ID, before[0], sec.ID, before[3])
	after := fieldIDs(&doc.Sections[0])

	want := []string{before[1], before[2], before[3], before[0], before[4]}
	if !sameOrder(after, want) {
		t.Fatalf("field splice mismatch:\n got %v\nwant %v", after, want)
	}
	if !samePermutation(before, after) {
		t.Fatalf("same-section move must be a permutation")
	}
}

func TestMoveFieldSelfDropIsNoop(t *testing.T) {
	doc := mustNewDoc(t)
	sec := &doc.Sections[0]
	before := fieldIDs(sec)

	doc.MoveField(sec.ID, before[1], sec.ID, before[1])
	if !sameOrder(fieldIDs(&doc.Sections[0]), before) {
		t.Fatalf("self drop must not change field order")
	}
}

func TestMoveFieldAcrossSections(t *testing.T) {
	doc := mustNewDoc(t)
	src := &doc.Sections[0]
	dst := &doc.Sections[1]
	srcBefore := len(src.Fields)
	dstBefore := len(dst.Fields)
	moved := src.Fields[2]
	target := dst.Fields[1]

	doc.MoveField(src.ID, moved.ID, dst.ID, target.ID)

	src = &doc.Sections[0]
	dst = &doc.Sections[1]
	if len(src.Fields) != srcBefore-1 {
		t.Fatalf("source must lose exactly one field, got %d", len(src.Fields))
	}
	if len(dst.Fields) != dstBefore+1 {
		t.Fatalf("target must gain exactly one field, got %d", len(dst.Fields))
	}
	// inserted at the target field's index, attributes untouched
	got := dst.Fields[1]
	if got.ID != moved.ID || got.Name != moved.Name || got.Type != moved.Type || got.Required != moved.Required {
		t.Fatalf("moved field changed: got %+v want %+v", got, moved)
	}
	if dst.Fields[2].ID != target.ID {
		t.Fatalf("target field should be pushed right")
	}
}

func TestMoveFieldMissingSourceIsNoop(t *testing.T) {
	doc := mustNewDoc(t)
	before0 := fieldIDs(&doc.Sections[0])
	before1 := fieldIDs(&doc.Sections[1])

	doc.MoveField("stale", "stale", doc.Sections[1].ID, doc.Sections[1].Fields[0].ID)
	doc.MoveField(doc.Sections[0].ID, "stale", doc.Sections[1].ID, doc.Sections[1].Fields[0].ID)

	if !sameOrder(fieldIDs(&doc.Sections[0]), before0) || !sameOrder(fieldIDs(&doc.Sections[1]), before1) {
		t.Fatalf("missing source must leave both sections unchanged")
	}
}

func TestMoveFieldMissingTargetAppends(t *testing.T) {
	doc := mustNewDoc(t)
	src := &doc.Sections[0]
	dst := &doc.Sections[1]
	moved := src.Fields[0]
	dstBefore := len(dst.Fields)

	// dropping onto the section body rather than a specific field
	doc.MoveField(src.ID, moved.ID, dst.ID, "")

	dst = &doc.Sections[1]
	if len(dst.Fields) != dstBefore+1 {
		t.Fatalf("expected append, got %d fields", len(dst.Fields))
	}
	if dst.Fields[len(dst.Fields)-1].ID != moved.ID {
		t.Fatalf("field should be appended at the end")
	}
}

func TestSessionDragStateClearedOnDrop(t *testing.T) {
	doc := mustNewDoc(t)
	sess := NewSession(doc)
	before := sectionIDs(doc)

	sess.BeginSectionDrag(before[0])
	sess.DropOnSection(before[2])

	if secID, field := sess.Dragging(); secID != "" || field != nil {
		t.Fatalf("drag state must be cleared after drop")
	}
	if sameOrder(sectionIDs(doc), before) {
		t.Fatalf("drop should have reordered sections")
	}

	// aborted drag also clears state and leaves the document alone
	current := sectionIDs(doc)
	sess.BeginSectionDrag(current[1])
	sess.EndDrag()
	if secID, _ := sess.Dragging(); secID != "" {
		t.Fatalf("drag state must be cleared after EndDrag")
	}
	if !sameOrder(sectionIDs(doc), current) {
		t.Fatalf("aborted drag must not mutate the document")
	}
}

func TestSessionDefaultExpansion(t *testing.T) {
	doc := mustNewDoc(t)
	sess := NewSession(doc)

	if !sess.IsExpanded(doc.Sections[0].ID) {
		t.Fatalf("first standard section should start expanded")
	}
	for _, sec := range doc.Sections[1:] {
		if sess.IsExpanded(sec.ID) {
			t.Fatalf("section %s should start collapsed", sec.Title)
		}
	}

	sess.ToggleSection(doc.Sections[0].ID)
	if sess.IsExpanded(doc.Sections[0].ID) {
		t.Fatalf("toggle should collapse the section")
	}
}
