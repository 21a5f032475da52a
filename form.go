package conui

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/agiangrant/conui/retained"
)

// ============================================================================
// FormControl Interface
// ============================================================================

// FormControl is implemented by controls that can participate in forms.
// TextField and CheckField adapt the built-in controls; custom controls can
// implement it directly.
type FormControl interface {
	// FormValue returns the current value of the control
	FormValue() any
	// SetFormValue sets the value programmatically
	SetFormValue(value any)
	// OnFormChange registers a callback for value changes
	OnFormChange(callback func(value any))
	// FormReset resets to the zero value
	FormReset()
	// FormElement returns the control that receives focus for the field
	FormElement() *retained.Control
}

type textField struct{ box *retained.TextBox }

// TextField adapts a text box. Its value is a string.
func TextField(box *retained.TextBox) FormControl { return textField{box} }

func (f textField) FormValue() any { return f.box.Text() }

func (f textField) SetFormValue(value any) {
	switch v := value.(type) {
	case string:
		f.box.SetText(v)
	case nil:
		f.box.SetText("")
	default:
		f.box.SetText(fmt.Sprint(v))
	}
}

func (f textField) OnFormChange(callback func(value any)) {
	f.box.OnTextChanged(func(*retained.Control, retained.EventArgs) {
		callback(f.box.Text())
	})
}

func (f textField) FormReset()                     { f.box.SetText("") }
func (f textField) FormElement() *retained.Control { return f.box.Base() }

type checkField struct{ box *retained.CheckBox }

// CheckField adapts a check box. Its value is a bool.
func CheckField(box *retained.CheckBox) FormControl { return checkField{box} }

func (f checkField) FormValue() any { return f.box.Checked() }

func (f checkField) SetFormValue(value any) {
	v, _ := value.(bool)
	f.box.SetChecked(v)
}

func (f checkField) OnFormChange(callback func(value any)) {
	f.box.OnCheckedChanged(func(*retained.Control, retained.EventArgs) {
		callback(f.box.Checked())
	})
}

func (f checkField) FormReset()                     { f.box.SetChecked(false) }
func (f checkField) FormElement() *retained.Control { return f.box.Base() }

// ============================================================================
// Form
// ============================================================================

// Form tracks named fields placed anywhere in a tree, their values and
// validation errors. Like the tree, it is used from the loop goroutine only.
type Form struct {
	name        string
	fields      map[string]*formField
	fieldOrder  []string
	fieldErrors map[string]error
	onSubmit    func(values map[string]any, valid bool)
}

type formField struct {
	control    FormControl
	validators []Validator
	value      any
}

// NewForm creates a new form with the given name.
func NewForm(name string) *Form {
	return &Form{
		name:        name,
		fields:      make(map[string]*formField),
		fieldErrors: make(map[string]error),
	}
}

// Name returns the form's name.
func (f *Form) Name() string { return f.name }

// RegisterField adds control under name. Registering a name again replaces
// the control but keeps its position in the field order.
func (f *Form) RegisterField(name string, control FormControl, validators ...Validator) *Form {
	if existing, ok := f.fields[name]; ok {
		existing.control = control
		existing.validators = validators
		existing.value = control.FormValue()
	} else {
		f.fields[name] = &formField{
			control:    control,
			validators: validators,
			value:      control.FormValue(),
		}
		f.fieldOrder = append(f.fieldOrder, name)
	}

	control.OnFormChange(func(value any) {
		field, ok := f.fields[name]
		if !ok || field.control != control {
			return
		}
		field.value = value
		// Re-validated on submit
		delete(f.fieldErrors, name)
	})
	return f
}

// Value returns the current value for a field.
func (f *Form) Value(name string) any {
	if field, ok := f.fields[name]; ok {
		return field.value
	}
	return nil
}

// Values returns all field values as a map.
func (f *Form) Values() map[string]any {
	values := make(map[string]any, len(f.fields))
	for name, field := range f.fields {
		values[name] = field.value
	}
	return values
}

// SetValue sets a field's value through its control.
func (f *Form) SetValue(name string, value any) {
	field, ok := f.fields[name]
	if !ok {
		return
	}
	field.control.SetFormValue(value)
	field.value = field.control.FormValue()
	delete(f.fieldErrors, name)
}

// Fields returns the field names in registration order.
func (f *Form) Fields() []string {
	out := make([]string, len(f.fieldOrder))
	copy(out, f.fieldOrder)
	return out
}

// ============================================================================
// Validation
// ============================================================================

// Validator returns nil if value is valid.
type Validator func(value any) error

// FieldError returns the validation error for a field, or nil if valid.
func (f *Form) FieldError(name string) error { return f.fieldErrors[name] }

// Errors returns all current validation errors.
func (f *Form) Errors() map[string]error {
	errs := make(map[string]error, len(f.fieldErrors))
	for name, err := range f.fieldErrors {
		errs[name] = err
	}
	return errs
}

// Validate runs every field's validators, keeping the first failure per
// field. It reports whether all fields are valid.
func (f *Form) Validate() bool {
	f.fieldErrors = make(map[string]error)
	for _, name := range f.fieldOrder {
		f.validateField(name)
	}
	return len(f.fieldErrors) == 0
}

// ValidateField runs the validators for one field.
func (f *Form) ValidateField(name string) bool {
	delete(f.fieldErrors, name)
	return f.validateField(name)
}

func (f *Form) validateField(name string) bool {
	field, ok := f.fields[name]
	if !ok {
		return true
	}
	for _, validate := range field.validators {
		if err := validate(field.value); err != nil {
			f.fieldErrors[name] = err
			return false
		}
	}
	return true
}

// OnSubmit sets the callback invoked by Submit.
func (f *Form) OnSubmit(callback func(values map[string]any, valid bool)) *Form {
	f.onSubmit = callback
	return f
}

// Submit validates the form and invokes the OnSubmit callback. When
// validation fails the first invalid field is focused.
func (f *Form) Submit() {
	valid := f.Validate()
	if !valid {
		for _, name := range f.fieldOrder {
			if f.fieldErrors[name] != nil {
				f.fields[name].control.FormElement().Focus()
				break
			}
		}
	}
	if f.onSubmit != nil {
		f.onSubmit(f.Values(), valid)
	}
}

// Reset clears all fields to their zero values.
func (f *Form) Reset() {
	f.fieldErrors = make(map[string]error)
	for _, name := range f.fieldOrder {
		field := f.fields[name]
		field.control.FormReset()
		field.value = field.control.FormValue()
	}
}

// ============================================================================
// Focus Navigation
// ============================================================================

// FocusedField returns the name of the field owning keyboard focus, or "".
func (f *Form) FocusedField() string {
	for _, name := range f.fieldOrder {
		if f.fields[name].control.FormElement().IsFocused() {
			return name
		}
	}
	return ""
}

// FocusNext focuses the field after the focused one (or the first field),
// wrapping around and skipping fields that cannot take focus. Pass reverse
// for the previous field. It reports whether focus moved.
func (f *Form) FocusNext(reverse bool) bool {
	n := len(f.fieldOrder)
	if n == 0 {
		return false
	}
	start := -1
	if current := f.FocusedField(); current != "" {
		for i, name := range f.fieldOrder {
			if name == current {
				start = i
				break
			}
		}
	}
	step := 1
	if reverse {
		step = -1
		if start < 0 {
			start = n
		}
	}
	for i := 1; i <= n; i++ {
		idx := ((start+step*i)%n + n) % n
		if idx == start {
			break
		}
		if f.fields[f.fieldOrder[idx]].control.FormElement().Focus() {
			return true
		}
	}
	return false
}

// ============================================================================
// Common Validators
// ============================================================================

func message(def string, override []string) string {
	if len(override) > 0 {
		return override[0]
	}
	return def
}

// Required rejects nil and empty strings.
func Required(msg ...string) Validator {
	err := errors.New(message("This field is required", msg))
	return func(value any) error {
		switch v := value.(type) {
		case nil:
			return err
		case string:
			if v == "" {
				return err
			}
		}
		return nil
	}
}

// MinLength rejects strings with fewer than n runes.
func MinLength(n int, msg ...string) Validator {
	err := errors.New(message(fmt.Sprintf("Must be at least %d characters", n), msg))
	return func(value any) error {
		if s, ok := value.(string); ok && utf8.RuneCountInString(s) < n {
			return err
		}
		return nil
	}
}

// MaxLength rejects strings with more than n runes.
func MaxLength(n int, msg ...string) Validator {
	err := errors.New(message(fmt.Sprintf("Must be at most %d characters", n), msg))
	return func(value any) error {
		if s, ok := value.(string); ok && utf8.RuneCountInString(s) > n {
			return err
		}
		return nil
	}
}

// Pattern rejects non-empty strings that do not match the expression.
func Pattern(pattern string, msg ...string) Validator {
	re := regexp.MustCompile(pattern)
	err := errors.New(message("Invalid format", msg))
	return func(value any) error {
		if s, ok := value.(string); ok && s != "" && !re.MatchString(s) {
			return err
		}
		return nil
	}
}

// Checked rejects a false bool, for check boxes that must be ticked.
func Checked(msg ...string) Validator {
	err := errors.New(message("Must be checked", msg))
	return func(value any) error {
		if v, ok := value.(bool); ok && !v {
			return err
		}
		return nil
	}
}
