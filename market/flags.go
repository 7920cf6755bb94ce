package market

// RecordFlags is the flag byte carried by deltas and depth records.
type RecordFlags uint8

const (
	// FlagLast marks the last record of a batch.
	FlagLast RecordFlags = 1 << 0
	// FlagTob marks a single top-of-book replacement.
	FlagTob RecordFlags = 1 << 1
	// FlagSnapshot marks a record belonging to a snapshot batch.
	FlagSnapshot RecordFlags = 1 << 2
	// FlagMbp marks a record belonging to an MBP batch.
	FlagMbp RecordFlags = 1 << 7
)

// Has reports whether all bits of flag are set.
func (f RecordFlags) Has(flag RecordFlags) bool {
	return f&flag == flag
}
