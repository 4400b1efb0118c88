package tabs

// Measurement is the bounding box of one tab label, in terminal cells,
// relative to the unscrolled strip row.
type Measurement struct {
	X, Y          int
	Width, Height int
}

// Store collects one measurement per tab. Each index is written at most
// once and the full set is published only after every index has reported.
type Store struct {
	count   int
	pending map[int]Measurement
	set     []Measurement
}

// NewStore returns an empty store expecting count measurements.
func NewStore(count int) *Store {
	s := &Store{}
	s.Reset(count)
	return s
}

// Reset discards every measurement and expects count new ones.
func (s *Store) Reset(count int) {
	if count < 0 {
		count = 0
	}
	s.count = count
	s.pending = make(map[int]Measurement, count)
	s.set = nil
}

// Record stores the measurement of the tab at index. Indexes already
// recorded and indexes out of range are ignored. It reports whether this
// call completed the set.
func (s *Store) Record(index int, m Measurement) bool {
	if index < 0 || index >= s.count || s.set != nil {
		return false
	}
	if _, ok := s.pending[index]; ok {
		return false
	}
	s.pending[index] = m
	if len(s.pending) < s.count {
		return false
	}
	set := make([]Measurement, s.count)
	for i, m := range s.pending {
		set[i] = m
	}
	s.set = set
	return true
}

// Complete reports whether every tab has been measured.
func (s *Store) Complete() bool {
	return s.set != nil
}

// Measurements returns the complete measurement set, or nil while it is
// still partial.
func (s *Store) Measurements() []Measurement {
	return s.set
}

// At returns the measurement of the tab at index from the complete set.
func (s *Store) At(index int) (Measurement, bool) {
	if index < 0 || index >= len(s.set) {
		return Measurement{}, false
	}
	return s.set[index], true
}

// Len returns the number of measurements recorded so far.
func (s *Store) Len() int {
	return len(s.pending)
}

// Count returns the number of expected measurements.
func (s *Store) Count() int {
	return s.count
}
