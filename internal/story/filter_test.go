package story

import "testing"

func testItems() []ListItem {
	return []ListItem{
		{ID: "s1", Genre: "scifi", Theme: "exploration", Setting: "A distant galaxy"},
		{ID: "s2", Genre: "cyberpunk", Theme: "heist", Setting: "Neo-Tokyo", Sections: []Section{{ID: "a"}, {ID: "b"}, {ID: "c"}}},
		{ID: "s3", Genre: "scifi", Theme: "first contact", Setting: "Europa"},
	}
}

// TestFilterMatch tests expression evaluation over list entries
func TestFilterMatch(t *testing.T) {
	filter, err := CompileFilter(`genre == "scifi"`)
	if err != nil {
		t.Fatalf("CompileFilter failed: %v", err)
	}

	matched, err := filter.Apply(testItems())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matched))
	}
	// Backend ordering is preserved.
	if matched[0].ID != "s1" || matched[1].ID != "s3" {
		t.Errorf("Expected s1, s3 in order, got %s, %s", matched[0].ID, matched[1].ID)
	}
}

// TestFilterSectionCount tests the sections variable
func TestFilterSectionCount(t *testing.T) {
	filter, err := CompileFilter(`sections > 2`)
	if err != nil {
		t.Fatalf("CompileFilter failed: %v", err)
	}

	matched, err := filter.Apply(testItems())
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(matched) != 1 || matched[0].ID != "s2" {
		t.Errorf("Expected only s2, got %v", matched)
	}
}

// TestFilterInvalidExpression tests compile failures
func TestFilterInvalidExpression(t *testing.T) {
	if _, err := CompileFilter(`genre ==`); err == nil {
		t.Error("Expected malformed expression to fail compilation")
	}
	if _, err := CompileFilter(`theme`); err == nil {
		t.Error("Expected non-boolean expression to fail compilation")
	}
	if _, err := CompileFilter(`unknown_field == 1`); err == nil {
		t.Error("Expected unknown variable to fail compilation")
	}
}
