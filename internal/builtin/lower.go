package builtin

import "bytes"

// Lower lowercases every record.
func Lower(ctx Context) error {
	return mapRecords(ctx, bytes.ToLower)
}
