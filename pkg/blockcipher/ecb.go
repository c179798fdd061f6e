// Package blockcipher expone AES-128 bloque por bloque (ECB), sin IV ni
// encadenamiento. Cada bloque de 16 bytes se cifra de forma independiente.
package blockcipher

import (
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"fmt"

	"gitlab.com/yawning/bsaes.git"
)

// KeySize es el tamaño de clave de AES-128 en bytes
const KeySize = 16

// BlockSize es el tamaño de bloque de AES en bytes
const BlockSize = 16

var (
	// ErrKeySize se devuelve cuando la clave no mide 128 bits
	ErrKeySize = errors.New("blockcipher: la clave debe tener 16 bytes")
	// ErrNotAligned se devuelve cuando la entrada no es múltiplo del bloque
	ErrNotAligned = errors.New("blockcipher: la entrada no está alineada al bloque")
)

// Cipher es el contrato que el pipeline espera del cifrador externo.
type Cipher interface {
	EncryptBlocks(src []byte) ([]byte, error)
	DecryptBlocks(src []byte) ([]byte, error)
}

// ECB cifra bloques de 16 bytes de forma independiente con AES-128.
type ECB struct {
	block cipher.Block
}

// NewECB crea un cifrador ECB para una clave de 128 bits.
func NewECB(key []byte) (*ECB, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: recibidos %d", ErrKeySize, len(key))
	}
	blk, err := bsaes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("blockcipher: error creando AES: %w", err)
	}
	return &ECB{block: blk}, nil
}

// NewECBFromHex decodifica una clave hexadecimal de 32 caracteres.
func NewECBFromHex(keyHex string) (*ECB, error) {
	key, err := ParseKey(keyHex)
	if err != nil {
		return nil, err
	}
	return NewECB(key)
}

// ParseKey decodifica y valida una clave AES-128 en hexadecimal.
func ParseKey(keyHex string) ([]byte, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("blockcipher: clave hexadecimal inválida: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: recibidos %d", ErrKeySize, len(key))
	}
	return key, nil
}

// EncryptBlocks devuelve un buffer nuevo del mismo largo que src.
func (e *ECB) EncryptBlocks(src []byte) ([]byte, error) {
	return e.crypt(src, e.block.Encrypt)
}

// DecryptBlocks es la operación inversa de EncryptBlocks.
func (e *ECB) DecryptBlocks(src []byte) ([]byte, error) {
	return e.crypt(src, e.block.Decrypt)
}

func (e *ECB) crypt(src []byte, fn func(dst, src []byte)) ([]byte, error) {
	if len(src)%BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrNotAligned, len(src))
	}
	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += BlockSize {
		fn(dst[i:i+BlockSize], src[i:i+BlockSize])
	}
	return dst, nil
}
