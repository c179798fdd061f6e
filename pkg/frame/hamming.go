package frame

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch indica un stream codificado con largo impar
var ErrLengthMismatch = errors.New("frame: el stream codificado debe tener largo par")

// Posiciones de cada bit dentro del código de 7 bits, contadas desde el MSB
// (1 = bit 6 del byte, 7 = bit 0). Bloque: [p1 p2 d1 p3 d2 d3 d4]
const (
	posP1 = 1
	posP2 = 2
	posD1 = 3
	posP3 = 4
	posD2 = 5
	posD3 = 6
	posD4 = 7
)

// shift traduce una posición 1..7 al desplazamiento dentro del byte. Tanto
// la codificación como la corrección por síndrome pasan por aquí.
func shift(pos int) uint {
	return uint(7 - pos)
}

func bitAt(codeword byte, pos int) byte {
	return (codeword >> shift(pos)) & 1
}

func place(bit byte, pos int) byte {
	return (bit & 1) << shift(pos)
}

// EncodeNibble codifica 4 bits de datos (d1 = bit más significativo) en un
// código Hamming(7,4). El bit 7 del resultado siempre es 0.
func EncodeNibble(nibble byte) byte {
	d1 := (nibble >> 3) & 1
	d2 := (nibble >> 2) & 1
	d3 := (nibble >> 1) & 1
	d4 := nibble & 1

	// Cálculo de bits de paridad
	p1 := d1 ^ d2 ^ d4
	p2 := d1 ^ d3 ^ d4
	p3 := d2 ^ d3 ^ d4

	return place(p1, posP1) | place(p2, posP2) | place(d1, posD1) |
		place(p3, posP3) | place(d2, posD2) | place(d3, posD3) | place(d4, posD4)
}

// Syndrome recalcula las tres paridades de un código recibido. 0 significa
// que no se detectó error; 1..7 es la posición a corregir.
func Syndrome(codeword byte) int {
	d1, d2, d3, d4 := bitAt(codeword, posD1), bitAt(codeword, posD2), bitAt(codeword, posD3), bitAt(codeword, posD4)

	c1 := bitAt(codeword, posP1) ^ d1 ^ d2 ^ d4
	c2 := bitAt(codeword, posP2) ^ d1 ^ d3 ^ d4
	c3 := bitAt(codeword, posP3) ^ d2 ^ d3 ^ d4

	return int(c3)<<2 | int(c2)<<1 | int(c1)
}

// DecodeCodeword corrige a lo sumo un bit y devuelve el nibble de datos.
// Con dos o más errores la corrección es silenciosamente incorrecta.
func DecodeCodeword(codeword byte) (nibble byte, corrected bool) {
	if s := Syndrome(codeword); s != 0 {
		codeword ^= place(1, s)
		corrected = true
	}

	nibble = bitAt(codeword, posD1)<<3 | bitAt(codeword, posD2)<<2 |
		bitAt(codeword, posD3)<<1 | bitAt(codeword, posD4)
	return nibble, corrected
}

// EncodeBuffer codifica cada byte como dos códigos (nibble alto, luego
// nibble bajo). El resultado mide exactamente el doble.
func EncodeBuffer(data []byte) []byte {
	encoded := make([]byte, 0, 2*len(data))
	for _, b := range data {
		encoded = append(encoded, EncodeNibble(b>>4), EncodeNibble(b&0x0F))
	}
	return encoded
}

// DecodeBuffer es la inversa de EncodeBuffer.
func DecodeBuffer(encoded []byte) ([]byte, error) {
	decoded, _, err := DecodeBufferStats(encoded)
	return decoded, err
}

// DecodeStats resume una decodificación
type DecodeStats struct {
	Codewords int // Códigos procesados
	Corrected int // Códigos con síndrome distinto de cero
}

// DecodeBufferStats decodifica y además cuenta los códigos corregidos.
func DecodeBufferStats(encoded []byte) ([]byte, DecodeStats, error) {
	if len(encoded)%2 != 0 {
		return nil, DecodeStats{}, fmt.Errorf("%w: %d bytes", ErrLengthMismatch, len(encoded))
	}

	stats := DecodeStats{Codewords: len(encoded)}
	decoded := make([]byte, len(encoded)/2)
	for i := 0; i < len(encoded); i += 2 {
		high, c1 := DecodeCodeword(encoded[i])
		low, c2 := DecodeCodeword(encoded[i+1])
		if c1 {
			stats.Corrected++
		}
		if c2 {
			stats.Corrected++
		}
		decoded[i/2] = high<<4 | low
	}
	return decoded, stats, nil
}
