package frame

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownCodec se devuelve cuando Lookup no reconoce el nombre
var ErrUnknownCodec = errors.New("frame: codec desconocido")

// Codec es la capa de enlace que protege el ciphertext antes del canal.
type Codec interface {
	Name() string
	Encode(data []byte) []byte
	Decode(encoded []byte) ([]byte, DecodeStats, error)
	// Overhead es la razón entre bytes codificados y bytes de entrada
	Overhead() float64
}

// Hamming74 aplica Hamming(7,4) nibble por nibble.
type Hamming74 struct{}

func (Hamming74) Name() string              { return "hamming" }
func (Hamming74) Encode(data []byte) []byte { return EncodeBuffer(data) }
func (Hamming74) Overhead() float64         { return 2 }

func (Hamming74) Decode(encoded []byte) ([]byte, DecodeStats, error) {
	return DecodeBufferStats(encoded)
}

// Identity deja pasar los bytes sin protección. Sirve como línea base para
// comparar contra Hamming.
type Identity struct{}

func (Identity) Name() string      { return "none" }
func (Identity) Overhead() float64 { return 1 }

func (Identity) Encode(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	return out
}

func (Identity) Decode(encoded []byte) ([]byte, DecodeStats, error) {
	out := make([]byte, len(encoded))
	copy(out, encoded)
	return out, DecodeStats{Codewords: len(encoded)}, nil
}

var codecs = map[string]Codec{
	Hamming74{}.Name(): Hamming74{},
	Identity{}.Name():  Identity{},
}

// Lookup devuelve el codec registrado con ese nombre.
func Lookup(name string) (Codec, error) {
	c, ok := codecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (disponibles: %v)", ErrUnknownCodec, name, Names())
	}
	return c, nil
}

// Names lista los codecs disponibles en orden alfabético.
func Names() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
