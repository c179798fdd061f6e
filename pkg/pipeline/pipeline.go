// Package pipeline encadena cifrado, codificación, ruido, decodificación y
// descifrado, y barre niveles de corrupción para medir la recuperación.
package pipeline

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/application"
	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/blockcipher"
	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/frame"
	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/instrument"
	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/noise"
	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/padding"
	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/presentation"
)

// Options configura un Pipeline. Solo Cipher es obligatorio.
type Options struct {
	Cipher  blockcipher.Cipher
	Codec   frame.Codec         // Por defecto Hamming(7,4)
	Noise   *noise.NoiseLayer   // Por defecto semilla basada en el reloj
	Logger  *logrus.Logger      // Por defecto logrus.New()
	Metrics *instrument.Metrics // Opcional
}

// Pipeline ejecuta la ida y vuelta completa sobre un mensaje.
type Pipeline struct {
	cipher  blockcipher.Cipher
	codec   frame.Codec
	noise   *noise.NoiseLayer
	log     *logrus.Logger
	metrics *instrument.Metrics
}

// New crea un Pipeline a partir de opts.
func New(opts Options) (*Pipeline, error) {
	if opts.Cipher == nil {
		return nil, errors.New("pipeline: se requiere un cifrador")
	}
	if opts.Codec == nil {
		opts.Codec = frame.Hamming74{}
	}
	if opts.Noise == nil {
		opts.Noise = noise.NewNoiseLayer()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}

	return &Pipeline{
		cipher:  opts.Cipher,
		codec:   opts.Codec,
		noise:   opts.Noise,
		log:     opts.Logger,
		metrics: opts.Metrics,
	}, nil
}

// NewFromConfig arma el Pipeline descrito por una configuración validada.
func NewFromConfig(cfg *application.Config, logger *logrus.Logger, metrics *instrument.Metrics) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	key, err := cfg.KeyBytes()
	if err != nil {
		return nil, err
	}
	c, err := blockcipher.NewECB(key)
	if err != nil {
		return nil, err
	}
	codec, err := frame.Lookup(cfg.Codec)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = noise.ObtenerSemilla()
	}

	return New(Options{
		Cipher:  c,
		Codec:   codec,
		Noise:   noise.NewNoiseLayerWithSeed(seed),
		Logger:  logger,
		Metrics: metrics,
	})
}

// Codec devuelve el codec en uso.
func (p *Pipeline) Codec() frame.Codec {
	return p.codec
}

// Sealed es el resultado de cifrar y codificar un mensaje. Encoded es la
// línea base prístina: nunca se modifica.
type Sealed struct {
	Plaintext  []byte
	Ciphertext []byte
	Encoded    []byte
}

// EncodedBits devuelve el largo en bits del stream codificado.
func (s *Sealed) EncodedBits() int {
	return len(s.Encoded) * 8
}

// Seal agrega padding, cifra y codifica plaintext. No modifica plaintext.
func (p *Pipeline) Seal(plaintext []byte) (*Sealed, error) {
	padded := padding.AddPadding(bytes.Clone(plaintext))

	ciphertext, err := p.cipher.EncryptBlocks(padded)
	if err != nil {
		return nil, fmt.Errorf("pipeline: error cifrando: %w", err)
	}
	encoded := p.codec.Encode(ciphertext)

	p.log.WithFields(logrus.Fields{
		"plaintext":  len(plaintext),
		"ciphertext": len(ciphertext),
		"encoded":    len(encoded),
		"codec":      p.codec.Name(),
	}).Debug("mensaje cifrado y codificado")
	p.metrics.SetEncodedBits(len(encoded) * 8)

	return &Sealed{
		Plaintext:  bytes.Clone(plaintext),
		Ciphertext: ciphertext,
		Encoded:    encoded,
	}, nil
}

// Outcome es el resultado de un nivel de corrupción.
type Outcome struct {
	Flips     int
	Noise     *noise.FlipResult
	Decode    frame.DecodeStats
	Recovered []byte
	Fidelity  presentation.Fidelity
}

// Recover corrompe una copia del stream prístino con flips bits, la
// decodifica, descifra y quita el padding. El ruido nunca produce error;
// solo una violación de contrato (largo impar, ciphertext desalineado).
func (p *Pipeline) Recover(s *Sealed, flips int) (*Outcome, error) {
	corrupted := bytes.Clone(s.Encoded)
	nr := p.noise.FlipBits(corrupted, flips)

	ciphertext, stats, err := p.codec.Decode(corrupted)
	if err != nil {
		return nil, fmt.Errorf("pipeline: error decodificando: %w", err)
	}

	decrypted, err := p.cipher.DecryptBlocks(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("pipeline: error descifrando: %w", err)
	}
	if !padding.Valid(decrypted) {
		p.log.WithField("flips", flips).Debug("padding inválido, se conserva el bloque completo")
	}
	recovered := padding.RemovePadding(decrypted)

	out := &Outcome{
		Flips:     flips,
		Noise:     nr,
		Decode:    stats,
		Recovered: recovered,
		Fidelity:  presentation.Compare(s.Plaintext, recovered),
	}

	p.log.WithFields(logrus.Fields{
		"flips":     flips,
		"effective": nr.Effective,
		"corrected": stats.Corrected,
		"exact":     out.Fidelity.Exact,
	}).Debug("nivel de corrupción procesado")
	p.metrics.ObserveRecovery(flips, nr.Effective, stats.Corrected, out.Fidelity.Exact)

	return out, nil
}
