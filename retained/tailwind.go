package retained

import (
	"sync"

	"github.com/agiangrant/conui/tw"
)

// styleCache caches parsed styles for repeated class strings.
// This provides O(1) lookup after first parse.
var (
	styleCache   = make(map[string]*tw.ComputedStyles)
	styleCacheMu sync.RWMutex
)

// resolveStyles returns cached or freshly parsed styles for a class string.
func resolveStyles(classes string) *tw.ComputedStyles {
	if classes == "" {
		return nil
	}

	// Check cache first (read lock)
	styleCacheMu.RLock()
	if cached, ok := styleCache[classes]; ok {
		styleCacheMu.RUnlock()
		return cached
	}
	styleCacheMu.RUnlock()

	// Parse and cache (write lock)
	styleCacheMu.Lock()
	defer styleCacheMu.Unlock()

	// Double-check after acquiring write lock
	if cached, ok := styleCache[classes]; ok {
		return cached
	}

	styles := tw.ParseClasses(classes)
	styleCache[classes] = &styles
	return &styles
}

// ClearStyleCache drops every cached parse. Call it after changing the
// theme aliases with tw.SetConfig.
func ClearStyleCache() {
	styleCacheMu.Lock()
	styleCache = make(map[string]*tw.ComputedStyles)
	styleCacheMu.Unlock()
}

// StyleCacheSize returns the number of cached class strings.
func StyleCacheSize() int {
	styleCacheMu.RLock()
	defer styleCacheMu.RUnlock()
	return len(styleCache)
}

// Classes returns the control's class string.
func (c *Control) Classes() string { return c.classes }

// SetClasses styles the control with utility classes such as
// "text-white bg-darkblue focus:bg-blue". The base style also becomes the
// control's buffer attribute.
func (c *Control) SetClasses(classes string) *Control {
	c.classes = classes
	c.computedStyles = resolveStyles(classes)
	if c.computedStyles != nil {
		fg, bg := c.computedStyles.Base.Colors(DefaultAttr.Foreground(), DefaultAttr.Background())
		c.attr = MakeAttr(fg, bg)
	}
	c.InvalidateVisual()
	return c
}

// VisualState returns the state used to pick a style variant.
func (c *Control) VisualState() tw.State {
	switch {
	case c.disabled:
		return tw.StateDisabled
	case c.focused:
		return tw.StateFocus
	}
	return tw.StateDefault
}

// StyleAttr resolves the control's classes for state over its attribute.
func (c *Control) StyleAttr(state tw.State) Attr {
	if c.computedStyles == nil {
		return c.attr
	}
	props := c.computedStyles.Resolve(state)
	fg, bg := props.Colors(c.attr.Foreground(), c.attr.Background())
	return MakeAttr(fg, bg)
}
