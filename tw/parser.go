package tw

import (
	"strings"
)

// State represents control interaction state
type State int

const (
	StateDefault State = iota
	StateFocus
	StatePressed
	StateDisabled
)

// StyleProperties represents concrete style values
type StyleProperties struct {
	Foreground *Color
	Background *Color
}

// ComputedStyles holds the base style plus one bucket per state variant.
type ComputedStyles struct {
	Base     StyleProperties
	Focus    StyleProperties
	Pressed  StyleProperties
	Disabled StyleProperties
}

// ParsedClass is a single class split into its variant and base utility.
type ParsedClass struct {
	State          State
	BaseClass      string
	ArbitraryValue *ArbitraryValue
}

// ArbitraryValue represents a runtime-parsed arbitrary value
type ArbitraryValue struct {
	Property string // "text" or "bg"
	Value    string // e.g. "#1da1f2"
}

// ParseClasses parses a class string and returns computed styles
// Example: "text-white bg-darkblue focus:bg-blue bg-[#1da1f2]"
func ParseClasses(classStr string) ComputedStyles {
	var computed ComputedStyles

	for _, class := range strings.Fields(classStr) {
		parsed := parseClass(class)

		var partial PartialStyle
		if parsed.ArbitraryValue != nil {
			var ok bool
			partial, ok = parseArbitraryValue(parsed.ArbitraryValue)
			if !ok {
				continue
			}
		} else {
			var ok bool
			partial, ok = GetClassMap()[parsed.BaseClass]
			if !ok {
				// Unknown class, silently ignore
				continue
			}
		}

		getTargetProperties(&computed, parsed).Merge(partial)
	}

	return computed
}

// parseClass splits a class into variant modifiers and base utility
// "focus:bg-blue" → ParsedClass{State: StateFocus, BaseClass: "bg-blue"}
// "bg-[#1da1f2]" → ParsedClass{ArbitraryValue: {Property: "bg", Value: "#1da1f2"}}
func parseClass(class string) ParsedClass {
	parts := strings.Split(class, ":")

	pc := ParsedClass{
		State:     StateDefault,
		BaseClass: parts[len(parts)-1],
	}

	for i := 0; i < len(parts)-1; i++ {
		switch parts[i] {
		case "focus":
			pc.State = StateFocus
		case "active", "pressed":
			pc.State = StatePressed
		case "disabled":
			pc.State = StateDisabled
		}
	}

	if strings.Contains(pc.BaseClass, "[") && strings.HasSuffix(pc.BaseClass, "]") {
		pc.ArbitraryValue = extractArbitraryValue(pc.BaseClass)
		pc.BaseClass = ""
	}

	return pc
}

// extractArbitraryValue parses arbitrary value syntax
// "bg-[#1da1f2]" → ArbitraryValue{Property: "bg", Value: "#1da1f2"}
func extractArbitraryValue(class string) *ArbitraryValue {
	bracketIdx := strings.Index(class, "[")
	if bracketIdx == -1 {
		return nil
	}

	return &ArbitraryValue{
		Property: strings.TrimSuffix(class[:bracketIdx], "-"),
		Value:    strings.TrimSuffix(class[bracketIdx+1:], "]"),
	}
}

// parseArbitraryValue converts an arbitrary value to a PartialStyle.
// Hex colors are snapped to the nearest palette entry.
func parseArbitraryValue(arb *ArbitraryValue) (PartialStyle, bool) {
	var partial PartialStyle
	if arb == nil {
		return partial, false
	}

	c, ok := ColorByName(arb.Value)
	if !ok {
		var err error
		if c, err = ParseHex(arb.Value); err != nil {
			return partial, false
		}
	}

	switch arb.Property {
	case "text":
		partial.Foreground = &c
	case "bg":
		partial.Background = &c
	default:
		return partial, false
	}
	return partial, true
}

// getTargetProperties returns the bucket a parsed class applies to
func getTargetProperties(computed *ComputedStyles, parsed ParsedClass) *StyleProperties {
	switch parsed.State {
	case StateFocus:
		return &computed.Focus
	case StatePressed:
		return &computed.Pressed
	case StateDisabled:
		return &computed.Disabled
	default:
		return &computed.Base
	}
}

// Merge merges a PartialStyle into these StyleProperties
// Later values override earlier ones (last class wins)
func (s *StyleProperties) Merge(p PartialStyle) {
	if p.Foreground != nil {
		s.Foreground = p.Foreground
	}
	if p.Background != nil {
		s.Background = p.Background
	}
}

// Resolve returns the base style with the variant for state merged over it.
func (cs *ComputedStyles) Resolve(state State) StyleProperties {
	out := cs.Base
	var variant StyleProperties
	switch state {
	case StateFocus:
		variant = cs.Focus
	case StatePressed:
		variant = cs.Pressed
	case StateDisabled:
		variant = cs.Disabled
	default:
		return out
	}
	out.Merge(PartialStyle{Foreground: variant.Foreground, Background: variant.Background})
	return out
}

// Colors returns the resolved colors, falling back to fg and bg for unset values.
func (s StyleProperties) Colors(fg, bg Color) (Color, Color) {
	if s.Foreground != nil {
		fg = *s.Foreground
	}
	if s.Background != nil {
		bg = *s.Background
	}
	return fg, bg
}
