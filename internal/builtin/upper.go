package builtin

import "bytes"

// Upper uppercases every record.
func Upper(ctx Context) error {
	return mapRecords(ctx, bytes.ToUpper)
}
