// SPDX-License-Identifier: EPL-2.0

package effects_test

import (
	"fmt"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/effects"
	"github.com/ik5/audfx/internal/audiotest"
)

func ExampleRemoveVocals() {
	buf := audio.NewBufferFromChannels(44100,
		[]float32{1, 0.5},
		[]float32{1, -0.5},
	)

	out := effects.RemoveVocals(buf)

	fmt.Printf("%.2f %.2f\n", out.Channel(0), out.Channel(1))
	// Output: [0.30 0.50] [0.30 -0.50]
}

func ExamplePitchShifter_Shift() {
	engine, err := effects.EngineByName(effects.EngineWSOLA, effects.ResamplerCubic)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	shifter := effects.NewPitchShifter(engine, nil)
	buf := audiotest.SineBuffer(22050, 2, 22050, 220, 0.5)

	up := shifter.Shift(buf, 5)
	same := shifter.Shift(buf, 0)

	fmt.Println(up.Channels(), up.Frames(), up.SampleRate())
	fmt.Println(same == buf)
	// Output:
	// 2 22050 22050
	// true
}

func ExampleRatio() {
	fmt.Printf("%.4f %.4f\n", effects.Ratio(7), effects.Ratio(-12))
	// Output: 1.4983 0.5000
}
