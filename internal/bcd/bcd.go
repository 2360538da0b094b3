// Package bcd converts between integers and the packed binary-coded-decimal bytes used by RTC registers.
package bcd

import (
	"errors"
	"fmt"
)

var ErrRange = errors.New("bcd: value out of range 0-99")

// Decode returns the two-digit value held in b. Nibbles above 9 are not rejected.
func Decode(b byte) int {
	return int(b>>4&0x0F)*10 + int(b&0x0F)
}

// Encode packs v (0-99) into one byte.
func Encode(v int) (byte, error) {
	if v < 0 || v > 99 {
		return 0, fmt.Errorf("%w: %d", ErrRange, v)
	}
	return byte(v/10)<<4 | byte(v%10), nil
}

// MustEncode is Encode for values the caller has already validated. It panics on ErrRange.
func MustEncode(v int) byte {
	b, err := Encode(v)
	if err != nil {
		panic(err)
	}
	return b
}
