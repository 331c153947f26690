// Package factory turns a configured provider selection into a usable
// provider handle. Construction never fails: unknown, unset or broken
// configurations yield the null provider and an error log entry.
package factory
