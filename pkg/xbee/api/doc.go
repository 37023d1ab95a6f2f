// Package api implements the XBee API frame codec: the length-delimited,
// checksummed binary envelope every exchange with the module uses.
//
// The wire form of a frame is
//
//	0x7E | lengthHi | lengthLo | type | data... | checksum
//
// where length counts the type byte plus the data bytes, and the checksum
// makes the sum of all length-counted bytes plus the checksum itself equal
// 0xFF modulo 256.
package api
