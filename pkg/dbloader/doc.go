// Package dbloader implements the runtime core of configdb: a base image
// loaded once at process start, an optional mutable overlay, and the
// resolve/query/mutate/persist operations layered over both.
//
// dbloader knows nothing about the public per-type facade in pkg/configdb;
// it exposes one generic Loader whose operations are parameterized over
// dbwire.Type via small generic helpers. The facade is a thin convenience
// layer on top.
package dbloader
