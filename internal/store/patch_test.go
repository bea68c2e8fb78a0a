package store

import "testing"

var testTable = map[string]FieldPolicy{
	"_id":     EditNever,
	"title":   EditUser,
	"content": EditUser,
	"score":   EditSystem,
}

func TestApplyPatch_UserEditKeepsOnlyUserFields(t *testing.T) {
	patch := map[string]any{
		"_id":     "abc",
		"title":   "new title",
		"score":   99,
		"unknown": "dropped",
	}

	set := ApplyPatch(testTable, patch, true)

	if len(set) != 1 {
		t.Fatalf("set has %d fields, want 1: %v", len(set), set)
	}
	if set["title"] != "new title" {
		t.Errorf("title = %v, want %q", set["title"], "new title")
	}
}

func TestApplyPatch_SystemEditMaySetSystemFields(t *testing.T) {
	set := ApplyPatch(testTable, map[string]any{"score": 5, "_id": "abc"}, false)

	if len(set) != 1 {
		t.Fatalf("set has %d fields, want 1: %v", len(set), set)
	}
	if set["score"] != 5 {
		t.Errorf("score = %v, want 5", set["score"])
	}
}

func TestApplyPatch_DropsNilValues(t *testing.T) {
	set := ApplyPatch(testTable, map[string]any{"title": nil, "content": "x"}, true)

	if _, ok := set["title"]; ok {
		t.Error("nil title survived the patch")
	}
	if set["content"] != "x" {
		t.Errorf("content = %v, want %q", set["content"], "x")
	}
}

func TestApplyPatch_NeverFieldsAreImmutable(t *testing.T) {
	set := ApplyPatch(testTable, map[string]any{"_id": "abc"}, false)

	if len(set) != 0 {
		t.Fatalf("set has %d fields, want 0: %v", len(set), set)
	}
}
