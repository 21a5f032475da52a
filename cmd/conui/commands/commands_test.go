package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agiangrant/conui"
	"github.com/agiangrant/conui/retained"
)

func newDemoTree(t *testing.T) (*retained.Tree, *demo) {
	t.Helper()
	tree := retained.NewTree(retained.DefaultTreeConfig())
	tree.Resize(retained.Size{Width: 60, Height: 20})
	d := newDemo("Demo", tree.Quit)
	if err := tree.SetRoot(d.root); err != nil {
		t.Fatal(err)
	}
	return tree, d
}

func press(tree *retained.Tree, key retained.Key) {
	tree.Dispatch(retained.KeyInput{Key: key, Down: true})
}

func typeKeys(tree *retained.Tree, s string) {
	for _, r := range s {
		tree.Dispatch(retained.KeyInput{Key: retained.KeyRune, Char: r, Down: true})
	}
}

func TestDemoSubmitValid(t *testing.T) {
	tree, d := newDemoTree(t)
	d.form.FocusNext(false)

	typeKeys(tree, "ada")
	press(tree, retained.KeyTab)
	typeKeys(tree, "a @b.io") // space is filtered out
	press(tree, retained.KeyTab)
	press(tree, retained.KeySpace) // news check box
	press(tree, retained.KeyTab)   // Submit
	press(tree, retained.KeyEnter)

	want := "Thanks ada <a@b.io>, updates=true"
	if got := d.status.Text(); got != want {
		t.Errorf("status = %q, want %q", got, want)
	}
}

func TestDemoSubmitInvalidFocusesField(t *testing.T) {
	tree, d := newDemoTree(t)
	d.form.FocusNext(false)
	typeKeys(tree, "ada")
	d.form.Submit()

	if got := d.status.Text(); !strings.Contains(got, "email: This field is required") {
		t.Errorf("status = %q, want email error", got)
	}
	if !d.email.IsFocused() {
		t.Errorf("focused = %v, want email", tree.Focus().Focused())
	}
}

func TestDemoResetAndQuit(t *testing.T) {
	tree, d := newDemoTree(t)
	d.form.FocusNext(false)
	typeKeys(tree, "ada")

	d.reset()
	if d.name.Text() != "" || !d.name.IsFocused() {
		t.Errorf("after reset: name=%q focused=%v", d.name.Text(), d.name.IsFocused())
	}

	// name, email, news, Submit, Reset, Quit
	for range 5 {
		press(tree, retained.KeyTab)
	}
	press(tree, retained.KeyEnter)
	if !tree.QuitRequested() {
		t.Error("Quit button did not request quit")
	}
}

func TestDemoRenders(t *testing.T) {
	tree, _ := newDemoTree(t)
	frame := tree.Render()

	var rows []string
	for y := range 3 {
		var sb strings.Builder
		for x := range 12 {
			c, _ := frame.Cell(x, y)
			sb.WriteRune(c.Char)
		}
		rows = append(rows, sb.String())
	}
	if rows[0] != "Demo        " {
		t.Errorf("row 0 = %q", rows[0])
	}
	if !strings.HasPrefix(rows[2], "Name    ") {
		t.Errorf("row 2 = %q, want the name row", rows[2])
	}
}

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	config, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if config.App.Title != conui.DefaultConfig().App.Title {
		t.Errorf("title = %q, want default", config.App.Title)
	}
	if _, err := loadConfig("missing.toml"); err == nil {
		t.Error("explicit missing file: expected error")
	}
}

func TestInitWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conui.toml")
	if err := Init([]string{"--config", path, "--title", "demo"}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	config, err := conui.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.App.Title != "demo" || config.Theme.Palette["accent"] == "" {
		t.Errorf("config = %+v", config)
	}

	if err := Init([]string{"--config", path}); err == nil {
		t.Error("second Init without --force: expected error")
	}
}

func TestDescribe(t *testing.T) {
	config := conui.DefaultConfig()
	config.Theme.Palette = map[string]string{"muted": "#7f7f7f", "accent": "#0000ee"}

	var buf bytes.Buffer
	if err := describe(&buf, config); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	accent := strings.Index(out, "accent     #0000ee -> blue")
	muted := strings.Index(out, "muted      #7f7f7f -> darkgray")
	if accent < 0 || muted < 0 || accent > muted {
		t.Errorf("describe output:\n%s", out)
	}
}
