// Copyright (C) 2020 The Dolhouse Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package f16 provides a 16 bit floating point value (IEEE 754 binary16)
// carried as its raw bit pattern, with conversions to and from float32.
package f16

import "math"

const (
	signMask     = 0x8000
	exponentMask = 0x7c00
	mantissaMask = 0x03ff
)

// Number holds the raw bits of a 16 bit floating point number.
type Number uint16

// From returns the Number nearest to f, truncating the mantissa.
// Values of too large a magnitude for binary16 become infinities, and
// values smaller than the smallest subnormal become zero.
func From(f float32) Number {
	bits := math.Float32bits(f)
	sign := Number(bits>>16) & signMask
	exp := int(bits>>23&0xff) - 127
	man := bits & 0x7fffff
	switch {
	case exp == 128: // infinity or NaN
		if man != 0 {
			return sign | exponentMask | 0x0200 | Number(man>>13)
		}
		return sign | exponentMask
	case exp > 15: // overflow
		return sign | exponentMask
	case exp >= -14: // normal
		return sign | Number(exp+15)<<10 | Number(man>>13)
	default: // subnormal, or zero on underflow
		return sign | Number((man|0x800000)>>uint(-1-exp))
	}
}

// Float32 returns the value of n expanded to a float32.
func (n Number) Float32() float32 {
	sign := uint32(n&signMask) << 16
	exp := uint32(n&exponentMask) >> 10
	man := uint32(n & mantissaMask)
	switch {
	case exp == 0x1f: // infinity or NaN
		if man != 0 {
			return math.Float32frombits(sign | 0x7fc00000 | man<<13)
		}
		return math.Float32frombits(sign | 0x7f800000)
	case exp == 0: // subnormal or zero
		if man == 0 {
			return math.Float32frombits(sign)
		}
		e := uint32(113)
		for man&0x0400 == 0 {
			man <<= 1
			e--
		}
		return math.Float32frombits(sign | e<<23 | (man&mantissaMask)<<13)
	default: // normal
		return math.Float32frombits(sign | (exp+112)<<23 | man<<13)
	}
}

// Inf returns a Number representing an infinity with the given sign.
func Inf(sign int) Number {
	if sign >= 0 {
		return exponentMask
	}
	return signMask | exponentMask
}

// NaN returns a Number representing a quiet not-a-number.
func NaN() Number {
	return exponentMask | 0x0200
}

// IsInf reports whether n is an infinity, according to sign.
// If sign > 0, IsInf reports whether n is positive infinity.
// If sign < 0, IsInf reports whether n is negative infinity.
// If sign == 0, IsInf reports whether n is either infinity.
func (n Number) IsInf(sign int) bool {
	switch {
	case sign > 0:
		return n == exponentMask
	case sign < 0:
		return n == signMask|exponentMask
	default:
		return n&^signMask == exponentMask
	}
}

// IsNaN reports whether n is a not-a-number value.
func (n Number) IsNaN() bool {
	return n&exponentMask == exponentMask && n&mantissaMask != 0
}
