// Package types defines the core types and interfaces shared by the AI studio kit.
// It includes the provider identity enumeration, the user-facing provider configuration,
// the chat request/stream contract every vendor implements, and the narrow logging and
// randomness capabilities injected into the higher layers.
package types
