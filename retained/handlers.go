package retained

// ============================================================================
// Handler Registration
// ============================================================================

// AddHandler registers h for ev on c. The handler is skipped once the args
// are marked handled.
func (c *Control) AddHandler(ev *RoutedEvent, h Handler) HandlerID {
	return c.AddHandlerEx(ev, h, false)
}

// AddHandlerEx registers h for ev on c. With handledEventsToo the handler
// runs even after an earlier handler in the same pass marked the args
// handled.
func (c *Control) AddHandlerEx(ev *RoutedEvent, h Handler, handledEventsToo bool) HandlerID {
	if ev == nil || h == nil {
		return 0
	}
	if c.handlers == nil {
		c.handlers = make(map[*RoutedEvent][]handlerEntry)
	}
	c.nextHandlerID++
	id := c.nextHandlerID
	c.handlers[ev] = append(c.handlers[ev], handlerEntry{
		id:               id,
		fn:               h,
		handledEventsToo: handledEventsToo,
	})
	return id
}

// RemoveHandler unregisters a handler previously added for ev. It reports
// whether anything was removed.
func (c *Control) RemoveHandler(ev *RoutedEvent, id HandlerID) bool {
	entries := c.handlers[ev]
	for i, e := range entries {
		if e.id == id {
			// Copy so a route currently iterating the old slice is unaffected.
			next := make([]handlerEntry, 0, len(entries)-1)
			next = append(next, entries[:i]...)
			next = append(next, entries[i+1:]...)
			if len(next) == 0 {
				delete(c.handlers, ev)
			} else {
				c.handlers[ev] = next
			}
			return true
		}
	}
	return false
}

// HasHandlers reports whether c has any handler for ev.
func (c *Control) HasHandlers(ev *RoutedEvent) bool {
	return len(c.handlers[ev]) > 0
}

// invokeHandlers runs c's handlers for the event carried by args, honoring
// the handled flag.
func (c *Control) invokeHandlers(args EventArgs) {
	ra := args.RoutedArgs()
	entries := c.handlers[ra.RoutedEvent]
	for _, e := range entries {
		if ra.Handled && !e.handledEventsToo {
			continue
		}
		e.fn(c, args)
	}
}

// ============================================================================
// Typed Helpers
// ============================================================================

func (c *Control) onKey(ev *RoutedEvent, h KeyHandler) HandlerID {
	return c.AddHandler(ev, func(sender *Control, args EventArgs) {
		if e, ok := args.(*KeyEventArgs); ok {
			h(sender, e)
		}
	})
}

func (c *Control) onMouseButton(ev *RoutedEvent, h MouseButtonHandler) HandlerID {
	return c.AddHandler(ev, func(sender *Control, args EventArgs) {
		if e, ok := args.(*MouseButtonEventArgs); ok {
			h(sender, e)
		}
	})
}

func (c *Control) onMouse(ev *RoutedEvent, h MouseHandler) HandlerID {
	return c.AddHandler(ev, func(sender *Control, args EventArgs) {
		if e, ok := args.(*MouseEventArgs); ok {
			h(sender, e)
		}
	})
}

func (c *Control) onFocus(ev *RoutedEvent, h FocusHandler) HandlerID {
	return c.AddHandler(ev, func(sender *Control, args EventArgs) {
		if e, ok := args.(*FocusChangedEventArgs); ok {
			h(sender, e)
		}
	})
}

// OnPreviewKeyDown registers a tunneling key-down handler.
func (c *Control) OnPreviewKeyDown(h KeyHandler) HandlerID { return c.onKey(PreviewKeyDownEvent, h) }

// OnKeyDown registers a bubbling key-down handler.
func (c *Control) OnKeyDown(h KeyHandler) HandlerID { return c.onKey(KeyDownEvent, h) }

// OnPreviewKeyUp registers a tunneling key-up handler.
func (c *Control) OnPreviewKeyUp(h KeyHandler) HandlerID { return c.onKey(PreviewKeyUpEvent, h) }

// OnKeyUp registers a bubbling key-up handler.
func (c *Control) OnKeyUp(h KeyHandler) HandlerID { return c.onKey(KeyUpEvent, h) }

// OnPreviewMouseDown registers a tunneling mouse-down handler.
func (c *Control) OnPreviewMouseDown(h MouseButtonHandler) HandlerID {
	return c.onMouseButton(PreviewMouseDownEvent, h)
}

// OnMouseDown registers a bubbling mouse-down handler.
func (c *Control) OnMouseDown(h MouseButtonHandler) HandlerID {
	return c.onMouseButton(MouseDownEvent, h)
}

// OnPreviewMouseUp registers a tunneling mouse-up handler.
func (c *Control) OnPreviewMouseUp(h MouseButtonHandler) HandlerID {
	return c.onMouseButton(PreviewMouseUpEvent, h)
}

// OnMouseUp registers a bubbling mouse-up handler.
func (c *Control) OnMouseUp(h MouseButtonHandler) HandlerID {
	return c.onMouseButton(MouseUpEvent, h)
}

// OnMouseMove registers a bubbling mouse-move handler.
func (c *Control) OnMouseMove(h MouseHandler) HandlerID {
	return c.onMouse(MouseMoveEvent, h)
}

// OnMouseWheel registers a bubbling wheel handler.
func (c *Control) OnMouseWheel(h MouseWheelHandler) HandlerID {
	return c.AddHandler(MouseWheelEvent, func(sender *Control, args EventArgs) {
		if e, ok := args.(*MouseWheelEventArgs); ok {
			h(sender, e)
		}
	})
}

// OnGotFocus registers a GotKeyboardFocus handler.
func (c *Control) OnGotFocus(h FocusHandler) HandlerID {
	return c.onFocus(GotKeyboardFocusEvent, h)
}

// OnLostFocus registers a LostKeyboardFocus handler.
func (c *Control) OnLostFocus(h FocusHandler) HandlerID {
	return c.onFocus(LostKeyboardFocusEvent, h)
}
