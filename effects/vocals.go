// SPDX-License-Identifier: EPL-2.0

package effects

import "github.com/ik5/audfx/audio"

const (
	// VocalReduction is the share of the mid (L+R) signal removed from
	// stereo input.
	VocalReduction = 0.7

	// MonoAttenuation scales mono input, where no mid/side split exists.
	MonoAttenuation = 0.6
)

// RemoveVocals attenuates center-panned content and returns a new buffer of
// the same shape. buf is not modified.
//
// For two or more channels the first two are split into mid=(L+R)/2 and
// side=(L-R)/2, mid is scaled by 1-VocalReduction, and the pair is rebuilt
// as L'=mid'+side, R'=mid'-side. Any further channels come out silent.
// Mono input is scaled by MonoAttenuation.
func RemoveVocals(buf *audio.Buffer) *audio.Buffer {
	out := audio.NewBuffer(buf.Channels(), buf.Frames(), buf.SampleRate())

	switch buf.Channels() {
	case 0:
		return out
	case 1:
		src, dst := buf.Channel(0), out.Channel(0)
		for i, s := range src {
			dst[i] = s * MonoAttenuation
		}
		return out
	}

	const keep = 1 - VocalReduction

	left, right := buf.Channel(0), buf.Channel(1)
	outL, outR := out.Channel(0), out.Channel(1)
	for i := range outL {
		mid := (left[i] + right[i]) / 2
		side := (left[i] - right[i]) / 2
		mid *= keep
		outL[i] = mid + side
		outR[i] = mid - side
	}

	return out
}
