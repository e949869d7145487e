package builtin

import "bytes"

// Trim strips leading and trailing whitespace from every record.
func Trim(ctx Context) error {
	return mapRecords(ctx, bytes.TrimSpace)
}
