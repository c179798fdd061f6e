package pipeline

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Level resume todas las repeticiones de un nivel de corrupción
type Level struct {
	Flips          int
	Sample         *Outcome // Primera repetición; es la que se reporta
	Trials         int
	Exact          int
	MeanEffective  float64
	MeanCorrected  float64
	MeanByteErrors float64
}

// SuccessRate es la fracción de repeticiones con recuperación exacta
func (l Level) SuccessRate() float64 {
	if l.Trials == 0 {
		return 0
	}
	return float64(l.Exact) / float64(l.Trials)
}

// SweepResult contiene el barrido completo
type SweepResult struct {
	Sealed    *Sealed
	CodecName string
	Trials    int
	Levels    []Level
	TotalTime time.Duration
}

// Sweep cifra y codifica plaintext una vez y luego, para cada nivel de
// intensities, ejecuta trials recuperaciones sobre copias del stream.
// Ningún nivel aborta el barrido por culpa del ruido.
func (p *Pipeline) Sweep(plaintext []byte, intensities []int, trials int) (*SweepResult, error) {
	if trials < 1 {
		trials = 1
	}
	start := time.Now()

	sealed, err := p.Seal(plaintext)
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"levels":       len(intensities),
		"trials":       trials,
		"encoded_bits": sealed.EncodedBits(),
	}).Info("iniciando barrido de corrupción")

	result := &SweepResult{
		Sealed:    sealed,
		CodecName: p.codec.Name(),
		Trials:    trials,
		Levels:    make([]Level, 0, len(intensities)),
	}

	for _, flips := range intensities {
		level := Level{Flips: flips, Trials: trials}
		var effective, corrected, byteErrors int

		for i := 0; i < trials; i++ {
			out, err := p.Recover(sealed, flips)
			if err != nil {
				return nil, fmt.Errorf("pipeline: nivel %d: %w", flips, err)
			}
			if i == 0 {
				level.Sample = out
			}
			if out.Fidelity.Exact {
				level.Exact++
			}
			effective += out.Noise.Effective
			corrected += out.Decode.Corrected
			byteErrors += out.Fidelity.ByteErrors
		}

		level.MeanEffective = float64(effective) / float64(trials)
		level.MeanCorrected = float64(corrected) / float64(trials)
		level.MeanByteErrors = float64(byteErrors) / float64(trials)
		result.Levels = append(result.Levels, level)
	}

	result.TotalTime = time.Since(start)
	p.log.WithField("took", result.TotalTime).Info("barrido terminado")
	return result, nil
}
