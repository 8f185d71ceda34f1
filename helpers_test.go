package dfalex

// testLabel is a small comparable label type used across this package's
// tests. It implements encoding.BinaryMarshaler/BinaryUnmarshaler so it
// can exercise the cache-key and persistence paths too.
type testLabel string

func (l testLabel) MarshalBinary() ([]byte, error) {
	return []byte(l), nil
}

func (l *testLabel) UnmarshalBinary(data []byte) error {
	*l = testLabel(data)
	return nil
}

func runDFA[L comparable](state *DfaState[L], input string) (L, bool) {
	cur := state
	for _, r := range input {
		cur = cur.NextState(uint16(r))
		if cur == nil {
			var zero L
			return zero, false
		}
	}
	return cur.Match()
}

// runFinder scans text backward from end (exclusive) until the finder
// either rejects or reports a match start, returning the index of the
// code unit consumed on the accepting step, or -1 if no start
// was found before running off the beginning of text.
func runFinder(start *DfaState[bool], text string, end int) int {
	cur := start
	units := []rune(text)
	for i := end - 1; i >= 0; i-- {
		cur = cur.NextState(uint16(units[i]))
		if cur == nil {
			return -1
		}
		if _, ok := cur.Match(); ok {
			return i
		}
	}
	return -1
}

func mustBuild[L comparable](t interface{ Fatalf(string, ...interface{}) }, b *Builder[L], resolver AmbiguityResolver[L]) *DfaState[L] {
	s, err := b.Build(resolver)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func mustNotErr(t interface{ Fatalf(string, ...interface{}) }, label string, err error) {
	if err != nil {
		t.Fatalf("%s: %v", label, err)
	}
}
