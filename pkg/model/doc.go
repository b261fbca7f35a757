// Package model defines the records the form builder edits: a Component per
// field, the singleton FormSettings and the FormState aggregate that history
// snapshots capture. Concrete types live in internal/model and are re-exported
// here. Optional component attributes (placeholder, rows, accepted file
// types) are pointers so exported snapshots keep absent keys absent, and
// ValidationRule values round-trip as the JSON string or number they were
// decoded from. Legacy "min"/"max" rule kinds are normalised to
// minLength/maxLength on decode.
package model
