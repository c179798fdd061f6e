package padding

// BlockSize es el tamaño de bloque del cifrador (AES = 16 bytes)
const BlockSize = 16

// AddPadding agrega entre 1 y BlockSize bytes al final de buf, cada uno con
// el valor de la cantidad agregada. Si buf ya está alineado se agrega un
// bloque completo.
func AddPadding(buf []byte) []byte {
	padLen := BlockSize - len(buf)%BlockSize
	for i := 0; i < padLen; i++ {
		buf = append(buf, byte(padLen))
	}
	return buf
}

// RemovePadding lee el último byte como longitud de padding y recorta esa
// cantidad de bytes. Si el valor es 0, mayor que BlockSize o mayor que el
// buffer, devuelve buf sin cambios: después de ruido el padding puede venir
// corrupto y eso no es un error.
func RemovePadding(buf []byte) []byte {
	if len(buf) == 0 {
		return buf
	}
	pad := int(buf[len(buf)-1])
	if pad == 0 || pad > BlockSize || pad > len(buf) {
		return buf
	}
	return buf[:len(buf)-pad]
}

// Valid indica si el padding de buf tiene una longitud aceptable para
// RemovePadding.
func Valid(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	pad := int(buf[len(buf)-1])
	return pad > 0 && pad <= BlockSize && pad <= len(buf)
}
