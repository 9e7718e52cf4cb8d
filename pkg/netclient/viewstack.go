package netclient

import "reflect"

// ViewType identifies a screen
type ViewType string

const (
	ViewHome      ViewType = "home"
	ViewLogin     ViewType = "login"
	ViewDirectory ViewType = "directory"
	ViewProfile   ViewType = "profile"
	ViewAdmin     ViewType = "admin"
	ViewNet       ViewType = "net"     // params: netId
	ViewSession   ViewType = "session" // params: sessionId, netId
)

// Root view types replace the whole stack when pushed, so back-navigation
// can never land in a stale context
var rootViews = map[ViewType]bool{
	ViewHome:      true,
	ViewLogin:     true,
	ViewDirectory: true,
	ViewProfile:   true,
	ViewAdmin:     true,
}

// View is one navigational state: a screen type plus its parameters
type View struct {
	Type   ViewType
	Params map[string]string
}

// ViewStack is the ordered sequence of navigational states. The top entry is
// the currently rendered view. The stack is never empty.
type ViewStack struct {
	views []View
}

// NewViewStack creates a stack with the home view at its root
func NewViewStack() *ViewStack {
	return &ViewStack{views: []View{{Type: ViewHome}}}
}

// Push navigates to a view. Pushing a view deep-equal to the current top is
// a no-op; pushing a root view type replaces the entire stack; anything else
// appends. Equality covers type and parameters, so the same screen type with
// different parameters still pushes.
func (s *ViewStack) Push(v View) {
	if reflect.DeepEqual(v, s.Current()) {
		return
	}
	if rootViews[v.Type] {
		s.views = []View{v}
		return
	}
	s.views = append(s.views, v)
}

// Pop navigates back. Popping at the root is a no-op.
func (s *ViewStack) Pop() {
	if len(s.views) > 1 {
		s.views = s.views[:len(s.views)-1]
	}
}

// Current returns the top of the stack
func (s *ViewStack) Current() View {
	return s.views[len(s.views)-1]
}

// Depth returns the number of views on the stack
func (s *ViewStack) Depth() int {
	return len(s.views)
}
