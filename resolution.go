package services

// resolutionStack tracks the services currently being constructed on the
// active resolution path, in the order they were entered.
type resolutionStack struct {
	names    []string
	visiting map[string]bool
}

func newResolutionStack() *resolutionStack {
	return &resolutionStack{
		names:    make([]string, 0),
		visiting: make(map[string]bool),
	}
}

// contains reports whether name is under construction.
func (s *resolutionStack) contains(name string) bool {
	return s.visiting[name]
}

// push marks name as under construction.
func (s *resolutionStack) push(name string) {
	s.names = append(s.names, name)
	s.visiting[name] = true
}

// pop removes name from the top of the stack. Names are always popped in
// reverse push order, so only the last entry is ever removed.
func (s *resolutionStack) pop(name string) {
	n := len(s.names)
	if n == 0 || s.names[n-1] != name {
		return
	}

	s.names = s.names[:n-1]
	delete(s.visiting, name)
}

// cycle returns the current path with name appended, e.g. [a b c a].
func (s *resolutionStack) cycle(name string) []string {
	path := make([]string, 0, len(s.names)+1)
	path = append(path, s.names...)

	return append(path, name)
}

// depth returns the number of services under construction.
func (s *resolutionStack) depth() int {
	return len(s.names)
}

// path returns a copy of the names under construction.
func (s *resolutionStack) path() []string {
	return append([]string(nil), s.names...)
}
