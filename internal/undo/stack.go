package undo

// entry is one undo step: the undoers recorded by a single transaction, or
// the inverses produced by reverting one.
type entry struct {
	label   string
	undoers []Undoer
	size    int
}

func (e *entry) push(u Undoer) {
	e.undoers = append(e.undoers, u)
	e.size += u.MemSize()
}

// stack is a LIFO of entries. Index 0 is the oldest.
type stack struct {
	entries []*entry
}

func (s *stack) len() int { return len(s.entries) }

func (s *stack) push(e *entry) { s.entries = append(s.entries, e) }

func (s *stack) peek() *entry {
	if len(s.entries) == 0 {
		return nil
	}
	return s.entries[len(s.entries)-1]
}

func (s *stack) pop() *entry {
	e := s.peek()
	if e != nil {
		s.entries[len(s.entries)-1] = nil
		s.entries = s.entries[:len(s.entries)-1]
	}
	return e
}

// removeOldest takes the bottom entry out of the stack.
func (s *stack) removeOldest() *entry {
	if len(s.entries) == 0 {
		return nil
	}
	e := s.entries[0]
	s.entries[0] = nil
	s.entries = s.entries[1:]
	return e
}

// drain empties the stack, returning entries newest first.
func (s *stack) drain() []*entry {
	out := make([]*entry, 0, len(s.entries))
	for e := s.pop(); e != nil; e = s.pop() {
		out = append(out, e)
	}
	return out
}

// entryCollector routes inverse undoers into an entry while keeping the
// history reference counts current.
type entryCollector struct {
	h *History
	e *entry
}

func (c *entryCollector) PushUndoer(u Undoer) {
	if u == nil {
		return
	}
	c.h.retain(u)
	c.e.push(u)
}
