// Package testutil contains helper builders used across tests to reduce
// boilerplate when constructing agents with canned behaviors (succeed, fail,
// panic, record invocations). These helpers are intentionally minimal and
// are not intended for production usage.
package testutil
