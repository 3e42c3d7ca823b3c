package configdb

import "github.com/giang-nguyentbk/configdb/pkg/dbloader"

// ReturnCode is re-exported from dbloader so facade callers never need to
// import the core package directly.
type ReturnCode = dbloader.ReturnCode

const (
	OK           = dbloader.OK
	KeyNotFound  = dbloader.KeyNotFound
	TypeMismatch = dbloader.TypeMismatch
	NotWritable  = dbloader.NotWritable
	Undefined    = dbloader.Undefined
)
