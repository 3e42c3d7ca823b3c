package configdb

import "github.com/giang-nguyentbk/configdb/pkg/dbloader"

// GetU8 through GetS64 are the eight numeric-type overloads of spec §4.1's
// get contract, each instantiating dbloader's generic Query Engine.
func (db *DB) GetU8(key string) (ReturnCode, []uint8) { return dbloader.Get[uint8](db.loader, key) }
func (db *DB) GetS8(key string) (ReturnCode, []int8)  { return dbloader.Get[int8](db.loader, key) }
func (db *DB) GetU16(key string) (ReturnCode, []uint16) {
	return dbloader.Get[uint16](db.loader, key)
}
func (db *DB) GetS16(key string) (ReturnCode, []int16) { return dbloader.Get[int16](db.loader, key) }
func (db *DB) GetU32(key string) (ReturnCode, []uint32) {
	return dbloader.Get[uint32](db.loader, key)
}
func (db *DB) GetS32(key string) (ReturnCode, []int32) { return dbloader.Get[int32](db.loader, key) }
func (db *DB) GetU64(key string) (ReturnCode, []uint64) {
	return dbloader.Get[uint64](db.loader, key)
}
func (db *DB) GetS64(key string) (ReturnCode, []int64) { return dbloader.Get[int64](db.loader, key) }

// GetString is the STRING overload, returning the full tokens-plus-whole
// sequence (spec §4.5) — use StringScalar or StringVector to trim it.
func (db *DB) GetString(key string) (ReturnCode, []string) {
	return dbloader.GetString(db.loader, key)
}

// Package-level convenience functions dispatching to Default(). Mirror the
// method set above one-for-one.

func GetU8(key string) (ReturnCode, []uint8)       { return Default().GetU8(key) }
func GetS8(key string) (ReturnCode, []int8)        { return Default().GetS8(key) }
func GetU16(key string) (ReturnCode, []uint16)     { return Default().GetU16(key) }
func GetS16(key string) (ReturnCode, []int16)      { return Default().GetS16(key) }
func GetU32(key string) (ReturnCode, []uint32)     { return Default().GetU32(key) }
func GetS32(key string) (ReturnCode, []int32)      { return Default().GetS32(key) }
func GetU64(key string) (ReturnCode, []uint64)     { return Default().GetU64(key) }
func GetS64(key string) (ReturnCode, []int64)      { return Default().GetS64(key) }
func GetString(key string) (ReturnCode, []string)  { return Default().GetString(key) }
