package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/frame"
	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/noise"
	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/presentation"
)

type options struct {
	text  string
	hex   string
	flips []int
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "hamming_inspect",
		Short: "Desglose de códigos Hamming(7,4)",
		Long: `Codifica la entrada con Hamming(7,4), opcionalmente invierte bits en
posiciones fijas y muestra cada bloque [p1 p2 d1 p3 d2 d3 d4] con su síndrome.
La posición p es el bit p%8 (desde el LSB) del byte p/8 del stream codificado.`,
		Example: `  hamming_inspect --text Hi
  hamming_inspect --hex b1 --flip 2 --flip 9`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := opts.input()
			if err != nil {
				return err
			}
			return inspect(cmd.OutOrStdout(), data, opts.flips)
		},
	}

	cmd.Flags().StringVar(&opts.text, "text", "", "texto a codificar")
	cmd.Flags().StringVar(&opts.hex, "hex", "", "bytes a codificar, en hexadecimal")
	cmd.Flags().IntSliceVar(&opts.flips, "flip", nil, "posiciones de bit a invertir en el stream codificado")
	cmd.MarkFlagsMutuallyExclusive("text", "hex")
	cmd.MarkFlagsOneRequired("text", "hex")

	return cmd
}

func (o options) input() ([]byte, error) {
	if o.hex != "" {
		data, err := hex.DecodeString(o.hex)
		if err != nil {
			return nil, fmt.Errorf("hex inválido: %w", err)
		}
		return data, nil
	}
	return []byte(o.text), nil
}

func inspect(w io.Writer, data []byte, flips []int) error {
	encoded := frame.EncodeBuffer(data)
	fmt.Fprintf(w, "Entrada (hex): %s (%d bytes)\n", presentation.Hex(data), len(data))
	fmt.Fprintf(w, "Codificado (hex): %s (%d bytes)\n", presentation.Hex(encoded), len(encoded))

	if len(flips) > 0 {
		for _, pos := range flips {
			if pos < 0 || pos >= len(encoded)*8 {
				return fmt.Errorf("posición fuera de rango: %d (máximo %d)", pos, len(encoded)*8-1)
			}
		}
		n := noise.NewNoiseLayerWithSource(&noise.Sequence{Positions: flips})
		result := n.FlipBits(encoded, len(flips))
		fmt.Fprintf(w, "Bits invertidos: %v (efectivos: %d)\n", result.Positions, result.Effective)
	}

	fmt.Fprintf(w, "\nDesglose por bloques de 7 bits:\n")
	for i, cw := range encoded {
		fmt.Fprintf(w, "  Bloque %d: %s\n", i+1, frame.Inspect(cw))
	}

	decoded, stats, err := frame.DecodeBufferStats(encoded)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nDecodificado (hex): %s\n", presentation.Hex(decoded))
	fmt.Fprintf(w, "Bloques corregidos: %d/%d\n", stats.Corrected, stats.Codewords)
	fmt.Fprintf(w, "Texto: %s\n", presentation.Escape(decoded))
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
