// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToPCM16 quantizes a sample to signed 16-bit PCM.
//
// The sample is clamped to [-1, 1], negative values are scaled by 32768 and
// non-negative values by 32767, then truncated toward zero. The asymmetric
// scale maps -1 to math.MinInt16 and 1 to math.MaxInt16. The product is
// taken in float64 so truncation sees the exact value. NaN maps to 0.
func Float32ToPCM16(x float32) int16 {
	if x != x {
		return 0
	}
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	if x < 0 {
		return int16(float64(x) * 32768)
	}
	return int16(float64(x) * 32767)
}

// PCM16ToFloat32 is the inverse mapping used by the decoders.
func PCM16ToFloat32(v int16) float32 {
	if v < 0 {
		return float32(v) / 32768.0
	}
	return float32(v) / 32767.0
}

// PCMToFloat32 normalizes a signed integer sample of the given bit depth.
// 16-bit samples use the same asymmetric scale as PCM16ToFloat32; other
// depths divide by 2^(bitDepth-1).
func PCMToFloat32(v, bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return float32(v) / (1 << 7)
	case 16:
		return PCM16ToFloat32(int16(v))
	case 24:
		return float32(v) / (1 << 23)
	default:
		return float32(float64(v) / (1 << 31))
	}
}
