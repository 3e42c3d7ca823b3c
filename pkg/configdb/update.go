package configdb

import "github.com/giang-nguyentbk/configdb/pkg/dbloader"

func (db *DB) UpdateU8(key string, values []uint8, persistent bool) ReturnCode {
	return dbloader.Update(db.loader, key, values, persistent)
}

func (db *DB) UpdateS8(key string, values []int8, persistent bool) ReturnCode {
	return dbloader.Update(db.loader, key, values, persistent)
}

func (db *DB) UpdateU16(key string, values []uint16, persistent bool) ReturnCode {
	return dbloader.Update(db.loader, key, values, persistent)
}

func (db *DB) UpdateS16(key string, values []int16, persistent bool) ReturnCode {
	return dbloader.Update(db.loader, key, values, persistent)
}

func (db *DB) UpdateU32(key string, values []uint32, persistent bool) ReturnCode {
	return dbloader.Update(db.loader, key, values, persistent)
}

func (db *DB) UpdateS32(key string, values []int32, persistent bool) ReturnCode {
	return dbloader.Update(db.loader, key, values, persistent)
}

func (db *DB) UpdateU64(key string, values []uint64, persistent bool) ReturnCode {
	return dbloader.Update(db.loader, key, values, persistent)
}

func (db *DB) UpdateS64(key string, values []int64, persistent bool) ReturnCode {
	return dbloader.Update(db.loader, key, values, persistent)
}

// UpdateString takes the already-tokenized form; the joined whole string is
// rebuilt internally per invariant 6.
func (db *DB) UpdateString(key string, tokens []string, persistent bool) ReturnCode {
	return dbloader.UpdateString(db.loader, key, tokens, persistent)
}

func (db *DB) Restore(key string) ReturnCode { return db.loader.Restore(key) }

func (db *DB) Erase(key string, persistent bool) ReturnCode { return db.loader.Erase(key, persistent) }

func (db *DB) Reset() ReturnCode { return db.loader.Reset() }

func UpdateU8(key string, values []uint8, persistent bool) ReturnCode {
	return Default().UpdateU8(key, values, persistent)
}

func UpdateS8(key string, values []int8, persistent bool) ReturnCode {
	return Default().UpdateS8(key, values, persistent)
}

func UpdateU16(key string, values []uint16, persistent bool) ReturnCode {
	return Default().UpdateU16(key, values, persistent)
}

func UpdateS16(key string, values []int16, persistent bool) ReturnCode {
	return Default().UpdateS16(key, values, persistent)
}

func UpdateU32(key string, values []uint32, persistent bool) ReturnCode {
	return Default().UpdateU32(key, values, persistent)
}

func UpdateS32(key string, values []int32, persistent bool) ReturnCode {
	return Default().UpdateS32(key, values, persistent)
}

func UpdateU64(key string, values []uint64, persistent bool) ReturnCode {
	return Default().UpdateU64(key, values, persistent)
}

func UpdateS64(key string, values []int64, persistent bool) ReturnCode {
	return Default().UpdateS64(key, values, persistent)
}

func UpdateString(key string, tokens []string, persistent bool) ReturnCode {
	return Default().UpdateString(key, tokens, persistent)
}

func Restore(key string) ReturnCode { return Default().Restore(key) }

func Erase(key string, persistent bool) ReturnCode { return Default().Erase(key, persistent) }

func Reset() ReturnCode { return Default().Reset() }
