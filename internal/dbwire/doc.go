// Package dbwire implements the on-disk wire format shared by the base image
// and the overlay file: entry framing, the value grammar, and the CRC-16
// checksum used to guard the base image's entries section.
//
// Nothing in this package is aware of tiers, mutexes, or the inverted index —
// those live in [github.com/giang-nguyentbk/configdb/pkg/dbloader]. dbwire
// only turns bytes into [Entry] values and back.
package dbwire
