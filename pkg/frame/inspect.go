package frame

import "fmt"

// Block es el desglose de un código en sus siete bits.
type Block struct {
	Codeword  byte
	P1, P2    byte
	D1        byte
	P3        byte
	D2, D3    byte
	D4        byte
	Syndrome  int
	Nibble    byte
	Corrected bool
}

// Inspect desglosa un código recibido y su decodificación.
func Inspect(codeword byte) Block {
	nibble, corrected := DecodeCodeword(codeword)
	return Block{
		Codeword:  codeword,
		P1:        bitAt(codeword, posP1),
		P2:        bitAt(codeword, posP2),
		D1:        bitAt(codeword, posD1),
		P3:        bitAt(codeword, posP3),
		D2:        bitAt(codeword, posD2),
		D3:        bitAt(codeword, posD3),
		D4:        bitAt(codeword, posD4),
		Syndrome:  Syndrome(codeword),
		Nibble:    nibble,
		Corrected: corrected,
	}
}

// Bits devuelve los 7 bits significativos como texto, MSB primero.
func (b Block) Bits() string {
	return fmt.Sprintf("%07b", b.Codeword&0x7F)
}

func (b Block) String() string {
	return fmt.Sprintf("%s [p1=%d, p2=%d, d1=%d, p3=%d, d2=%d, d3=%d, d4=%d] síndrome=%d datos=%04b",
		b.Bits(), b.P1, b.P2, b.D1, b.P3, b.D2, b.D3, b.D4, b.Syndrome, b.Nibble)
}
