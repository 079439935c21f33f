// Package shortid converts UUIDs to compact base-62 public identifiers and back.
//
// A short id is the 128-bit UUID value written in the alphabet 0-9A-Za-z, most significant
// digit first, without padding. Any boundary that receives an identifier accepts either form:
// Decode returns canonical input unchanged and converts everything else.
//
// # Modes
//
// A Strict codec rejects input containing characters outside the alphabet, empty input and
// values that do not fit in 128 bits. A Lenient codec returns such input unchanged, which is
// the behaviour legacy clients rely on. The mode is chosen by shortid.lenient in configuration.
package shortid
