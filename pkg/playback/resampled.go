// ABOUTME: Source wrapper converting sample rate for the output device
// ABOUTME: Lets sources at any rate share a fixed-rate audio context
package playback

import "github.com/harperreed/lofiwave/pkg/audio/resample"

// resampledSource presents src at a different sample rate
type resampledSource struct {
	Source
	rate      int
	resampler *resample.Resampler
	in        []float64
	pending   []float64
	err       error
}

// Resampled wraps src so it reports and produces samples at rate. It returns
// src unchanged when the rates already match.
func Resampled(src Source, rate int) Source {
	if rate <= 0 || src.SampleRate() == rate {
		return src
	}
	return &resampledSource{
		Source:    src,
		rate:      rate,
		resampler: resample.New(src.SampleRate(), rate),
	}
}

func (s *resampledSource) SampleRate() int { return s.rate }

func (s *resampledSource) Read(samples []float64) (int, error) {
	for len(s.pending) == 0 {
		if s.err != nil {
			return 0, s.err
		}

		want := s.resampler.InputSamplesNeeded(len(samples))
		if cap(s.in) < want {
			s.in = make([]float64, want)
		}
		n, err := s.Source.Read(s.in[:want])
		if n > 0 {
			out := make([]float64, s.resampler.OutputSamplesNeeded(n))
			m := s.resampler.Resample(s.in[:n], out)
			s.pending = out[:m]
		}
		if err != nil {
			s.err = err
		}
	}

	n := copy(samples, s.pending)
	s.pending = s.pending[n:]
	return n, nil
}
