package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/presentation"
)

// WriteReport escribe una línea "N bits flipped -> texto" por nivel. Con
// showHex agrega primero el stream codificado en hexadecimal; con más de
// una repetición agrega la tabla de estadísticas.
func WriteReport(w io.Writer, res *SweepResult, pres *presentation.PresentationLayer, showHex bool) {
	if showHex {
		fmt.Fprintf(w, "Ciphertext (%s encoded): %s\n\n", displayName(res.CodecName), presentation.Hex(res.Sealed.Encoded))
	}

	for _, level := range res.Levels {
		fmt.Fprintf(w, "%d bits flipped -> %s\n", level.Flips, pres.DecodificarMensaje(level.Sample.Recovered))
	}

	if res.Trials > 1 {
		writeStats(w, res)
	}
}

func writeStats(w io.Writer, res *SweepResult) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "📊 Estadísticas por nivel (%d repeticiones, %d bits codificados):\n", res.Trials, res.Sealed.EncodedBits())
	fmt.Fprintf(w, "   %6s  %8s  %10s  %10s  %10s\n", "flips", "exactas", "efectivos", "corregidos", "bytes mal")
	for _, l := range res.Levels {
		fmt.Fprintf(w, "   %6d  %7.1f%%  %10.2f  %10.2f  %10.2f\n",
			l.Flips, l.SuccessRate()*100, l.MeanEffective, l.MeanCorrected, l.MeanByteErrors)
	}
	fmt.Fprintf(w, "   Tiempo total: %v\n", res.TotalTime)
}

func displayName(codec string) string {
	if codec == "" {
		return codec
	}
	return strings.ToUpper(codec[:1]) + codec[1:]
}
