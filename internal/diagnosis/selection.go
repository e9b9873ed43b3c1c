package diagnosis

// BenignSet reports whether a code is benign. *catalog.Catalog satisfies it.
type BenignSet interface {
	IsBenign(code string) bool
}

// CodesToApply returns the codes of ranked that may be written into a
// selection: the synthetic monitor entry and benign codes are left out.
// Order follows ranked.
func CodesToApply(ranked []RankedEntry, benign BenignSet) []string {
	var out []string
	for _, e := range ranked {
		if e.IsMonitor() || benign.IsBenign(e.Code) {
			continue
		}
		out = append(out, e.Code)
	}
	return out
}

// Selection is an insertion-ordered set of selected condition codes, the
// working set a log entry is built from. The zero value is an empty
// selection.
type Selection struct {
	codes []string
	index map[string]int
}

// NewSelection returns a selection holding codes, duplicates dropped.
func NewSelection(codes ...string) *Selection {
	s := &Selection{}
	for _, c := range codes {
		s.add(c)
	}
	return s
}

func (s *Selection) add(code string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[code]; ok {
		return
	}
	s.index[code] = len(s.codes)
	s.codes = append(s.codes, code)
}

func (s *Selection) remove(code string) {
	i, ok := s.index[code]
	if !ok {
		return
	}
	s.codes = append(s.codes[:i], s.codes[i+1:]...)
	delete(s.index, code)
	for j := i; j < len(s.codes); j++ {
		s.index[s.codes[j]] = j
	}
}

// Has reports whether code is selected.
func (s *Selection) Has(code string) bool {
	_, ok := s.index[code]
	return ok
}

// Toggle flips code and returns its new state.
func (s *Selection) Toggle(code string) bool {
	if s.Has(code) {
		s.remove(code)
		return false
	}
	s.add(code)
	return true
}

// Set selects or deselects code.
func (s *Selection) Set(code string, on bool) {
	if on {
		s.add(code)
	} else {
		s.remove(code)
	}
}

// Replace clears the selection and selects codes in order.
func (s *Selection) Replace(codes []string) {
	s.Clear()
	for _, c := range codes {
		s.add(c)
	}
}

// Clear deselects everything.
func (s *Selection) Clear() {
	s.codes = nil
	s.index = nil
}

// Codes returns the selected codes in selection order.
func (s *Selection) Codes() []string {
	out := make([]string, len(s.codes))
	copy(out, s.codes)
	return out
}

// Len returns the number of selected codes.
func (s *Selection) Len() int {
	return len(s.codes)
}
