package commands

import (
	"fmt"
	"strings"

	"github.com/agiangrant/conui"
	"github.com/agiangrant/conui/retained"
)

// demo is the sign-up form `conui run` shows.
type demo struct {
	root   *retained.ScrollViewer
	form   *conui.Form
	name   *retained.TextBox
	email  *retained.TextBox
	news   *retained.CheckBox
	status *retained.TextBlock
}

func newDemo(title string, quit func()) *demo {
	d := &demo{
		name:   retained.Field(20, ""),
		email:  retained.Field(20, ""),
		news:   retained.NewCheckBox("Send me updates"),
		status: retained.Label("", "text-yellow"),
	}
	d.name.SetName("name")
	d.email.SetName("email")
	d.email.SetCharFilter(func(r rune) bool { return r != ' ' })

	d.form = conui.NewForm("signup").
		RegisterField("name", conui.TextField(d.name), conui.Required(), conui.MinLength(2)).
		RegisterField("email", conui.TextField(d.email), conui.Required(), conui.Pattern(`^[^@]+@[^@]+\.[^@]+$`, "Invalid email")).
		RegisterField("news", conui.CheckField(d.news))
	d.form.OnSubmit(d.submitted)

	row := func(label string, field retained.Element) *retained.Panel {
		return retained.HStack("", retained.Label(fmt.Sprintf("%-7s", label), ""), field)
	}
	gap := func() *retained.TextBlock { return retained.Label("  ", "") }

	content := retained.VStack("",
		retained.Label(title, "text-white"),
		retained.Label("", ""),
		row("Name", d.name),
		row("Email", d.email),
		d.news,
		retained.Label("", ""),
		retained.HStack("",
			retained.ActionButton("Submit", d.form.Submit),
			gap(),
			retained.ActionButton("Reset", d.reset),
			gap(),
			retained.ActionButton("Quit", quit),
		),
		retained.Label("", ""),
		d.status,
		retained.Label("Tab moves focus, Ctrl+Q quits", "text-darkgray"),
	)
	d.root = retained.NewScrollViewer(content)
	return d
}

func (d *demo) submitted(values map[string]any, valid bool) {
	if !valid {
		var msgs []string
		for _, name := range d.form.Fields() {
			if err := d.form.FieldError(name); err != nil {
				msgs = append(msgs, name+": "+err.Error())
			}
		}
		d.status.SetText(strings.Join(msgs, "; "))
		return
	}
	d.status.SetText(fmt.Sprintf("Thanks %s <%s>, updates=%v", values["name"], values["email"], values["news"]))
}

func (d *demo) reset() {
	d.form.Reset()
	d.status.SetText("")
	d.name.Focus()
}
