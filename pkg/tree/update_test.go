package tree

import (
	"reflect"
	"testing"
)

func TestUpdateToggle(t *testing.T) {
	f := sampleForest()
	out := Update(ToggleMsg{Key: "A"}, f)
	if findNode(t, out, "A").Opened {
		t.Fatalf("expected ToggleMsg to close A")
	}
}

func TestUpdateSelectIsIdentity(t *testing.T) {
	f := sampleForest()
	out := Update(SelectMsg{Key: "A1"}, f)
	if !reflect.DeepEqual(out, f) {
		t.Fatalf("expected SelectMsg to leave the forest unchanged")
	}
}

func TestUpdateSearch(t *testing.T) {
	f := sampleForest()
	out := Update(SearchMsg{Text: "doc2"}, f)
	if findNode(t, out, "A1").Visible {
		t.Fatalf("expected A1 hidden")
	}
	if !findNode(t, out, "A2").Visible {
		t.Fatalf("expected A2 visible")
	}
}

func TestUpdateSetChecked(t *testing.T) {
	f := sampleForest()
	out := Update(SetCheckedMsg{Multiple: true, Cascade: true, Key: "A", Previous: false}, f)
	if !findNode(t, out, "A2").Checked {
		t.Fatalf("expected cascade through SetCheckedMsg")
	}
}

func TestUpdateMatchesDirectOperations(t *testing.T) {
	f := sampleForest()
	cases := []struct {
		name   string
		msg    Msg
		direct func(Forest) Forest
	}{
		{"toggle", ToggleMsg{Key: "A2"}, func(f Forest) Forest { return Toggle("A2", f) }},
		{"search", SearchMsg{Text: "read"}, func(f Forest) Forest { return Search("read", f) }},
		{"setChecked", SetCheckedMsg{Cascade: true, Key: "A"}, func(f Forest) Forest { return SetChecked(false, true, "A", false, f) }},
	}
	for _, tc := range cases {
		if !reflect.DeepEqual(Update(tc.msg, f), tc.direct(f)) {
			t.Fatalf("%s: dispatcher disagrees with direct operation", tc.name)
		}
	}
}
