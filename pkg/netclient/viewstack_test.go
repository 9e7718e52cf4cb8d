package netclient

import "testing"

func TestPushSameViewIsNoOp(t *testing.T) {
	s := NewViewStack()
	v := View{Type: ViewSession, Params: map[string]string{"sessionId": "s1"}}

	s.Push(v)
	s.Push(v)

	if s.Depth() != 2 {
		t.Errorf("Depth = %d, want 2 (home + session, duplicate ignored)", s.Depth())
	}
	if s.Current().Type != ViewSession {
		t.Errorf("Current = %s, want session", s.Current().Type)
	}
}

func TestPushSameTypeDifferentParams(t *testing.T) {
	s := NewViewStack()
	s.Push(View{Type: ViewSession, Params: map[string]string{"sessionId": "s1"}})
	s.Push(View{Type: ViewSession, Params: map[string]string{"sessionId": "s2"}})

	if s.Depth() != 3 {
		t.Errorf("Depth = %d, want 3: same type with different params must push", s.Depth())
	}
}

func TestPushRootReplacesStack(t *testing.T) {
	s := NewViewStack()
	s.Push(View{Type: ViewNet, Params: map[string]string{"netId": "n1"}})
	s.Push(View{Type: ViewSession, Params: map[string]string{"sessionId": "s1"}})

	s.Push(View{Type: ViewDirectory})

	if s.Depth() != 1 {
		t.Errorf("Depth = %d, want 1 after pushing a root view", s.Depth())
	}
	if s.Current().Type != ViewDirectory {
		t.Errorf("Current = %s, want directory", s.Current().Type)
	}
}

func TestPopAtRootIsNoOp(t *testing.T) {
	s := NewViewStack()
	s.Pop()

	if s.Depth() != 1 {
		t.Errorf("Depth = %d, want 1: pop at root must be a no-op", s.Depth())
	}
	if s.Current().Type != ViewHome {
		t.Errorf("Current = %s, want home", s.Current().Type)
	}
}

func TestPopReturnsToPreviousView(t *testing.T) {
	s := NewViewStack()
	s.Push(View{Type: ViewNet, Params: map[string]string{"netId": "n1"}})
	s.Push(View{Type: ViewSession, Params: map[string]string{"sessionId": "s1"}})

	s.Pop()

	if s.Current().Type != ViewNet {
		t.Errorf("Current = %s, want net after pop", s.Current().Type)
	}
}
