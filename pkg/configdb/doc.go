// Package configdb is the public facade over dbloader (spec §4.1): a
// process-wide singleton exposing one Get/Update pair per supported
// element type, plus Restore/Reset/Erase and the scalar/vector
// convenience helpers used by callers that don't want to think about
// sequences.
package configdb
