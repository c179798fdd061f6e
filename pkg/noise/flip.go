package noise

import (
	"math/rand"
	"sort"
	"time"
)

// PositionSource elige posiciones de bit en [0, n). *rand.Rand lo cumple.
type PositionSource interface {
	Intn(n int) int
}

// Sequence es una PositionSource que entrega posiciones fijas en orden,
// volviendo al principio al agotarse. Cada posición se reduce módulo n.
type Sequence struct {
	Positions []int
	next      int
}

func (s *Sequence) Intn(n int) int {
	if len(s.Positions) == 0 {
		return 0
	}
	pos := s.Positions[s.next%len(s.Positions)] % n
	s.next++
	return pos
}

// NoiseLayer maneja la inyección de errores en el stream codificado
type NoiseLayer struct {
	src PositionSource
}

// NewNoiseLayer crea una nueva instancia con semilla aleatoria
func NewNoiseLayer() *NoiseLayer {
	return NewNoiseLayerWithSeed(ObtenerSemilla())
}

// NewNoiseLayerWithSeed crea una instancia con semilla específica (para tests reproducibles)
func NewNoiseLayerWithSeed(seed int64) *NoiseLayer {
	return &NoiseLayer{
		src: rand.New(rand.NewSource(seed)),
	}
}

// NewNoiseLayerWithSource usa una fuente de posiciones provista por el
// llamador, por ejemplo una secuencia fija en tests.
func NewNoiseLayerWithSource(src PositionSource) *NoiseLayer {
	return &NoiseLayer{src: src}
}

// FlipResult contiene información sobre los errores inyectados
type FlipResult struct {
	Requested int   // Cantidad de flips pedidos
	Positions []int // Posiciones elegidas, en orden, con repeticiones
	TotalBits int   // Bits del buffer
	Effective int   // Bits que quedaron cambiados al final
}

// FlipBits invierte count posiciones elegidas al azar sobre todos los bits
// de buf, modificándolo en el lugar. Las posiciones se eligen con
// reemplazo: si una sale dos veces, los flips se cancelan. La posición p
// corresponde al bit p%8 (desde el LSB) del byte p/8.
// count <= 0 o buf vacío no hacen nada.
func (n *NoiseLayer) FlipBits(buf []byte, count int) *FlipResult {
	result := &FlipResult{
		Requested: count,
		TotalBits: len(buf) * 8,
	}
	if result.TotalBits == 0 {
		return result
	}

	for i := 0; i < count; i++ {
		pos := n.src.Intn(result.TotalBits)
		buf[pos/8] ^= 1 << (pos % 8)
		result.Positions = append(result.Positions, pos)
	}

	result.Effective = len(result.Changed())
	return result
}

// Changed devuelve las posiciones que quedaron invertidas (elegidas una
// cantidad impar de veces), ordenadas.
func (r *FlipResult) Changed() []int {
	counts := make(map[int]int, len(r.Positions))
	for _, pos := range r.Positions {
		counts[pos]++
	}

	var changed []int
	for pos, c := range counts {
		if c%2 == 1 {
			changed = append(changed, pos)
		}
	}
	sort.Ints(changed)
	return changed
}

// BER devuelve la tasa de error de bit efectiva.
func (r *FlipResult) BER() float64 {
	if r.TotalBits == 0 {
		return 0
	}
	return float64(r.Effective) / float64(r.TotalBits)
}

// ObtenerSemilla devuelve una nueva semilla basada en el tiempo actual
func ObtenerSemilla() int64 {
	return time.Now().UnixNano()
}
