package conui

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agiangrant/conui/retained"
)

type formFixture struct {
	tree  *retained.Tree
	name  *retained.TextBox
	email *retained.TextBox
	agree *retained.CheckBox
	form  *Form
}

func newFormFixture(t *testing.T) *formFixture {
	t.Helper()
	f := &formFixture{
		tree:  retained.NewTree(retained.DefaultTreeConfig()),
		name:  retained.NewTextBox(10),
		email: retained.NewTextBox(10),
		agree: retained.NewCheckBox("I agree"),
	}
	root := retained.VStack("", f.name, f.email, f.agree)
	if err := f.tree.SetRoot(root); err != nil {
		t.Fatal(err)
	}
	f.form = NewForm("signup").
		RegisterField("name", TextField(f.name), Required(), MaxLength(8)).
		RegisterField("email", TextField(f.email), Pattern(`^[^@]+@[^@]+$`, "Invalid email")).
		RegisterField("agree", CheckField(f.agree), Checked())
	return f
}

func typeText(box *retained.TextBox, s string) {
	for _, r := range s {
		box.Insert(r)
	}
}

func TestFormTracksValues(t *testing.T) {
	f := newFormFixture(t)

	typeText(f.name, "ada")
	f.agree.Toggle()

	want := map[string]any{"name": "ada", "email": "", "agree": true}
	if diff := cmp.Diff(want, f.form.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "email", "agree"}, f.form.Fields()); diff != "" {
		t.Errorf("Fields() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormSetValue(t *testing.T) {
	f := newFormFixture(t)

	f.form.SetValue("email", "a@b")
	f.form.SetValue("agree", true)
	f.form.SetValue("missing", "ignored")

	if got := f.email.Text(); got != "a@b" {
		t.Errorf("email text = %q, want a@b", got)
	}
	if !f.agree.Checked() {
		t.Error("agree not checked")
	}
	if got := f.form.Value("email"); got != "a@b" {
		t.Errorf("Value(email) = %v, want a@b", got)
	}
}

func TestFormValidate(t *testing.T) {
	tests := []struct {
		name       string
		fill       func(f *formFixture)
		wantValid  bool
		wantErrors []string
	}{
		{
			name:       "empty",
			fill:       func(*formFixture) {},
			wantErrors: []string{"agree", "name"},
		},
		{
			name: "bad email, name too long",
			fill: func(f *formFixture) {
				typeText(f.name, "abcdefghi")
				typeText(f.email, "nope")
				f.agree.Toggle()
			},
			wantErrors: []string{"email", "name"},
		},
		{
			name: "valid",
			fill: func(f *formFixture) {
				typeText(f.name, "ada")
				typeText(f.email, "ada@x")
				f.agree.Toggle()
			},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFormFixture(t)
			tt.fill(f)

			if got := f.form.Validate(); got != tt.wantValid {
				t.Errorf("Validate() = %v, want %v", got, tt.wantValid)
			}
			var names []string
			for _, name := range f.form.Fields() {
				if f.form.FieldError(name) != nil {
					names = append(names, name)
				}
			}
			want := tt.wantErrors
			// Fields() order is registration order: name, email, agree
			if diff := cmp.Diff(sortByFieldOrder(f.form, want), names); diff != "" {
				t.Errorf("invalid fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func sortByFieldOrder(form *Form, names []string) []string {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	var out []string
	for _, n := range form.Fields() {
		if set[n] {
			out = append(out, n)
		}
	}
	return out
}

func TestFormEditClearsError(t *testing.T) {
	f := newFormFixture(t)
	f.form.Validate()
	if f.form.FieldError("name") == nil {
		t.Fatal("expected name error")
	}

	typeText(f.name, "x")
	if err := f.form.FieldError("name"); err != nil {
		t.Errorf("FieldError(name) = %v after edit, want nil", err)
	}
	if !f.form.ValidateField("name") {
		t.Error("ValidateField(name) = false")
	}
}

func TestFormSubmitFocusesFirstInvalidField(t *testing.T) {
	f := newFormFixture(t)
	typeText(f.name, "ada")
	typeText(f.email, "bad")

	var gotValid bool
	var gotValues map[string]any
	f.form.OnSubmit(func(values map[string]any, valid bool) {
		gotValues, gotValid = values, valid
	})
	f.form.Submit()

	if gotValid {
		t.Error("submit reported valid")
	}
	if gotValues["name"] != "ada" {
		t.Errorf("submitted name = %v, want ada", gotValues["name"])
	}
	if !f.email.IsFocused() {
		t.Errorf("focused field = %q, want email", f.form.FocusedField())
	}
	if got := f.form.Errors()["email"]; got == nil || got.Error() != "Invalid email" {
		t.Errorf("email error = %v, want Invalid email", got)
	}
}

func TestFormReset(t *testing.T) {
	f := newFormFixture(t)
	typeText(f.name, "ada")
	f.agree.Toggle()
	f.form.Validate()

	f.form.Reset()

	if f.name.Text() != "" || f.agree.Checked() {
		t.Errorf("controls not reset: name=%q agree=%v", f.name.Text(), f.agree.Checked())
	}
	want := map[string]any{"name": "", "email": "", "agree": false}
	if diff := cmp.Diff(want, f.form.Values()); diff != "" {
		t.Errorf("Values() mismatch (-want +got):\n%s", diff)
	}
	if len(f.form.Errors()) != 0 {
		t.Errorf("Errors() = %v, want none", f.form.Errors())
	}
}

func TestFormFocusNext(t *testing.T) {
	f := newFormFixture(t)
	f.email.SetEnabled(false)

	var order []string
	for range 3 {
		if !f.form.FocusNext(false) {
			t.Fatal("FocusNext returned false")
		}
		order = append(order, f.form.FocusedField())
	}
	if diff := cmp.Diff([]string{"name", "agree", "name"}, order); diff != "" {
		t.Errorf("forward order mismatch (-want +got):\n%s", diff)
	}

	f.form.FocusNext(true)
	if got := f.form.FocusedField(); got != "agree" {
		t.Errorf("after reverse, focused = %q, want agree", got)
	}
}

func TestFormFocusNextSingleField(t *testing.T) {
	tree := retained.NewTree(retained.DefaultTreeConfig())
	box := retained.NewTextBox(4)
	if err := tree.SetRoot(box); err != nil {
		t.Fatal(err)
	}
	form := NewForm("one").RegisterField("only", TextField(box))

	if !form.FocusNext(false) {
		t.Fatal("first FocusNext should focus the field")
	}
	if form.FocusNext(false) {
		t.Error("FocusNext moved focus with a single focused field")
	}
}
