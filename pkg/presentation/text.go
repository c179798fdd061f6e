package presentation

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/bits"
	"strings"
	"unicode/utf8"
)

// PresentationLayer convierte el texto del usuario a bytes y los bytes
// recuperados de vuelta a algo que se pueda imprimir.
type PresentationLayer struct {
	escape bool
}

// NewPresentationLayer crea una nueva instancia. Con escape=true los bytes
// no imprimibles se muestran como \xNN.
func NewPresentationLayer(escape bool) *PresentationLayer {
	return &PresentationLayer{escape: escape}
}

// CodificarMensaje convierte el mensaje a bytes
func (p *PresentationLayer) CodificarMensaje(texto string) ([]byte, error) {
	if texto == "" {
		return nil, fmt.Errorf("el texto no puede estar vacío")
	}
	if !utf8.ValidString(texto) {
		return nil, fmt.Errorf("el texto contiene caracteres no válidos UTF-8")
	}
	return []byte(texto), nil
}

// DecodificarMensaje interpreta los bytes recuperados como texto. Nunca
// falla: con mucho ruido el resultado es basura, y eso es lo que se mide.
func (p *PresentationLayer) DecodificarMensaje(data []byte) string {
	if p.escape {
		return Escape(data)
	}
	return string(data)
}

// Escape deja los caracteres ASCII imprimibles y reemplaza el resto por \xNN.
func Escape(data []byte) string {
	var sb strings.Builder
	for _, b := range data {
		if b >= 32 && b < 127 && b != '\\' {
			sb.WriteByte(b)
			continue
		}
		fmt.Fprintf(&sb, `\x%02x`, b)
	}
	return sb.String()
}

// Hex devuelve la representación hexadecimal en minúsculas
func Hex(data []byte) string {
	return hex.EncodeToString(data)
}

// Fidelity compara el mensaje original contra el recuperado
type Fidelity struct {
	Exact      bool // Recuperación byte a byte idéntica
	ByteErrors int  // Bytes distintos en el prefijo común más la diferencia de largo
	BitErrors  int  // Bits distintos en el prefijo común
	LengthDiff int  // len(recuperado) - len(original)
}

// Compare mide qué tan lejos quedó el mensaje recuperado del original.
func Compare(original, recovered []byte) Fidelity {
	f := Fidelity{
		Exact:      bytes.Equal(original, recovered),
		LengthDiff: len(recovered) - len(original),
	}

	common := min(len(original), len(recovered))
	for i := 0; i < common; i++ {
		if d := original[i] ^ recovered[i]; d != 0 {
			f.ByteErrors++
			f.BitErrors += bits.OnesCount8(d)
		}
	}
	if f.LengthDiff < 0 {
		f.ByteErrors -= f.LengthDiff
	} else {
		f.ByteErrors += f.LengthDiff
	}
	return f
}

// Printable indica si todos los bytes son ASCII imprimible
func Printable(data []byte) bool {
	for _, b := range data {
		if b < 32 || b >= 127 {
			return false
		}
	}
	return true
}
