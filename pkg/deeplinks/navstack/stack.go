package navstack

import "github.com/BrandonKowalski/deeplinks/pkg/deeplinks"

// Stack is the primary navigation history above the root scene, bottom
// first. The zero value is an empty stack.
type Stack struct {
	scenes []deeplinks.Scene
}

func (s *Stack) Push(scene deeplinks.Scene) {
	s.scenes = append(s.scenes, scene)
}

// Pop removes the top scene and returns it, or nil if the stack is empty.
func (s *Stack) Pop() deeplinks.Scene {
	top := s.Top()
	if top != nil {
		s.scenes[len(s.scenes)-1] = nil
		s.scenes = s.scenes[:len(s.scenes)-1]
	}
	return top
}

// Top returns the top scene, or nil if the stack is empty.
func (s *Stack) Top() deeplinks.Scene {
	if len(s.scenes) == 0 {
		return nil
	}
	return s.scenes[len(s.scenes)-1]
}

func (s *Stack) Len() int {
	return len(s.scenes)
}

// Scenes returns a copy of the stack, bottom first.
func (s *Stack) Scenes() []deeplinks.Scene {
	return append([]deeplinks.Scene(nil), s.scenes...)
}

// Truncate keeps the bottom depth scenes and returns the removed ones, top
// first. Truncate(0) empties the stack.
func (s *Stack) Truncate(depth int) []deeplinks.Scene {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(s.scenes) {
		return nil
	}

	removed := make([]deeplinks.Scene, 0, len(s.scenes)-depth)
	for i := len(s.scenes) - 1; i >= depth; i-- {
		removed = append(removed, s.scenes[i])
		s.scenes[i] = nil
	}
	s.scenes = s.scenes[:depth]
	return removed
}
