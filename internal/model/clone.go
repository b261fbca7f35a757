package model

import "github.com/mohae/deepcopy"

// CloneState returns a structural copy of s that shares no slices or pointers
// with the original.
func CloneState(s FormState) FormState {
	return deepcopy.Copy(s).(FormState)
}

// CloneComponent returns a structural copy of c.
func CloneComponent(c Component) Component {
	return deepcopy.Copy(c).(Component)
}

// CloneComponents copies a component list. A nil input stays nil.
func CloneComponents(in []Component) []Component {
	if in == nil {
		return nil
	}
	return deepcopy.Copy(in).([]Component)
}
