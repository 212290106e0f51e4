package preset

import "errors"

// SlotCount is the number of sample slots in every set.
const SlotCount = 8

// SampleSet is a named selection of exactly SlotCount samples.
// An unselected slot holds the empty string.
type SampleSet struct {
	Name    string            `json:"name" yaml:"name"`
	Samples [SlotCount]string `json:"samples" yaml:"samples,flow"`
}

// Collection is the full persistent state, in insertion order.
// Names are not required to be unique.
type Collection []SampleSet

var ErrNotFound = errors.New("preset not found")

// Append returns c with r added at the end. c is not modified.
func Append(c Collection, r SampleSet) Collection {
	out := make(Collection, 0, len(c)+1)
	out = append(out, c...)
	return append(out, r)
}

// RemoveByName returns c without any record named name, preserving order.
func RemoveByName(c Collection, name string) Collection {
	out := make(Collection, 0, len(c))
	for _, s := range c {
		if s.Name != name {
			out = append(out, s)
		}
	}
	return out
}

// FindByName returns the first record named name.
func FindByName(c Collection, name string) (SampleSet, bool) {
	for _, s := range c {
		if s.Name == name {
			return s, true
		}
	}
	return SampleSet{}, false
}
