package element

import "math"

const (
	f32ExpMask  = 0x7f800000
	f32MantMask = 0x007fffff
	f32QuietBit = 0x00400000
	f64ExpMask  = 0x7ff0000000000000
	mantShift   = 52 - 23
)

// float32ToFloat64 widens a float32 bit pattern. NaNs are moved bit by bit
// so the payload and the quiet bit survive.
func float32ToFloat64(bits uint32) float64 {
	if bits&f32ExpMask != f32ExpMask || bits&f32MantMask == 0 {
		return float64(math.Float32frombits(bits))
	}
	sign := uint64(bits>>31) << 63
	mant := uint64(bits&f32MantMask) << mantShift
	return math.Float64frombits(sign | f64ExpMask | mant)
}

// float64ToFloat32 narrows v to a float32 bit pattern, the inverse of
// float32ToFloat64 for NaNs. A NaN whose payload lies below float32
// precision becomes a quiet NaN.
func float64ToFloat32(v float64) uint32 {
	if !math.IsNaN(v) {
		return math.Float32bits(float32(v))
	}
	bits := math.Float64bits(v)
	sign := uint32(bits>>63) << 31
	mant := uint32(bits>>mantShift) & f32MantMask
	if mant == 0 {
		mant = f32QuietBit
	}
	return sign | f32ExpMask | mant
}
