// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/audfx/audio"
	"github.com/ik5/audfx/formats/wav"
)

func ExampleEncodeWAV() {
	buf := audio.NewBufferFromChannels(44100,
		[]float32{1, 0},
		[]float32{1, 0},
	)

	data, err := wav.EncodeWAV(buf)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(len(data), string(data[0:4]), string(data[8:12]))
	// Output: 52 RIFF WAVE
}

func ExampleDecoder() {
	data, _ := wav.EncodeWAV(audio.NewBufferFromChannels(16000, []float32{0.5, -0.5, 0.25}))

	src, err := wav.Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer src.Close()

	buf, err := audio.ReadAll(src)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("%d Hz, %d channel, %d frames\n", buf.SampleRate(), buf.Channels(), buf.Frames())
	fmt.Printf("%.3f\n", buf.Channel(0))
	// Output:
	// 16000 Hz, 1 channel, 3 frames
	// [0.500 -0.500 0.250]
}
