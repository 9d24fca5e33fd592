package vectorizer

// Alphabet maps between string labels/categories and integer IDs.
type Alphabet struct {
	ToID  map[string]int `json:"to_id"`
	ToStr []string       `json:"to_str"`
}

// NewAlphabet creates an alphabet holding the given entries in order.
func NewAlphabet(entries ...string) *Alphabet {
	a := &Alphabet{
		ToID: make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		a.Add(e)
	}
	return a
}

// Add adds a string to the alphabet if not already present, returns its ID.
func (a *Alphabet) Add(s string) int {
	if id, ok := a.ToID[s]; ok {
		return id
	}
	id := len(a.ToStr)
	a.ToID[s] = id
	a.ToStr = append(a.ToStr, s)
	return id
}

// Get returns the ID for a string, or -1 if not found.
func (a *Alphabet) Get(s string) int {
	if id, ok := a.ToID[s]; ok {
		return id
	}
	return -1
}

// Size returns the number of entries.
func (a *Alphabet) Size() int {
	return len(a.ToStr)
}

// OneHot encodes s as an indicator vector of width Size().
// Strings outside the alphabet map to fallback when it is present,
// otherwise to the zero vector.
func (a *Alphabet) OneHot(s, fallback string) []float64 {
	v := make([]float64, a.Size())
	id := a.Get(s)
	if id < 0 {
		id = a.Get(fallback)
	}
	if id >= 0 {
		v[id] = 1
	}
	return v
}
