package deduction

// Store keeps editable overrides. Edits land in a typing map immediately and are
// committed after a quiet period; every field has its own independent timer.
type Store interface {
	// Type records raw keystroke input and (re)starts the field's debounce timer.
	Type(key FieldKey, raw string)
	// Commit parses raw and commits it now, cancelling only this field's pending timer.
	Commit(key FieldKey, raw string)
	// FlushAll commits every pending field immediately.
	FlushAll()
	Typing(key FieldKey) (string, bool)
	IsPending(key FieldKey) bool
	Get(companyKey, employeeName string) Override
	Snapshot() Snapshot
	Pending() int
}
