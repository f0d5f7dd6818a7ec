package engine

// Messages maps violation categories to the user-facing message rendered into
// FieldErrors. Built once at configuration time; read-only afterwards.
type Messages map[Category]string

// DefaultMessages returns the stock message table
func DefaultMessages() Messages {
	return Messages{
		CategoryNotNull:      "is not present",
		CategoryCheck:        "is invalid",
		CategoryUnique:       "is already taken",
		CategoryForeignKey:   "is invalid",
		CategoryReferencedBy: "cannot be changed currently",
	}
}

// Merge returns a new table with recognized overrides applied on top of the
// receiver. Unrecognized keys are ignored; the receiver is never modified.
func (m Messages) Merge(overrides map[string]string) Messages {
	merged := make(Messages, len(m))
	for cat, msg := range m {
		merged[cat] = msg
	}
	for key, msg := range overrides {
		cat := Category(key)
		if _, known := merged[cat]; known {
			merged[cat] = msg
		}
	}
	return merged
}
