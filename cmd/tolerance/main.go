package main

import (
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/application"
	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/instrument"
	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/pipeline"
	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/presentation"
)

func newRootCommand() *cobra.Command {
	cfg := application.Default()
	var configFile string
	var showMetrics bool

	cmd := &cobra.Command{
		Use:   "tolerance",
		Short: "AES-128 + Hamming(7,4) bajo ruido de bits",
		Long: `Cifra un mensaje con AES-128 (bloques independientes), protege el
ciphertext con Hamming(7,4), invierte una cantidad creciente de bits al azar
y muestra qué texto se recupera en cada nivel de corrupción.`,
		Example: `  # Demostración original: 0..25 bits invertidos
  tolerance

  # Comparar contra el ciphertext sin codificar
  tolerance --codec none

  # Estadísticas con 500 repeticiones por nivel y semilla fija
  tolerance --min 0 --max 200 --step 20 -n 500 --seed 42 --escape`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			final := cfg
			if configFile != "" {
				loaded, err := application.LoadFile(configFile)
				if err != nil {
					return err
				}
				overrideFromFlags(cmd, loaded, cfg)
				final = loaded
			}
			return run(cmd.OutOrStdout(), cmd.ErrOrStderr(), final, showMetrics)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "archivo de configuración TOML")
	f.StringVarP(&cfg.Message, "message", "m", cfg.Message, "mensaje a cifrar")
	f.StringVarP(&cfg.Key, "key", "k", cfg.Key, "clave AES-128 en hexadecimal (32 caracteres)")
	f.IntVar(&cfg.MinFlips, "min", cfg.MinFlips, "primer nivel de bits invertidos")
	f.IntVar(&cfg.MaxFlips, "max", cfg.MaxFlips, "último nivel de bits invertidos")
	f.IntVar(&cfg.Step, "step", cfg.Step, "incremento entre niveles")
	f.IntVarP(&cfg.Trials, "trials", "n", cfg.Trials, "repeticiones por nivel")
	f.Int64Var(&cfg.Seed, "seed", cfg.Seed, "semilla del ruido (0 = reloj)")
	f.StringVar(&cfg.Codec, "codec", cfg.Codec, "codec de canal: hamming o none")
	f.BoolVar(&cfg.Escape, "escape", cfg.Escape, "mostrar bytes no imprimibles como \\xNN")
	f.BoolVar(&cfg.ShowHex, "hex", cfg.ShowHex, "mostrar el stream codificado en hexadecimal")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "nivel de logging (debug, info, warn, error)")
	f.BoolVar(&showMetrics, "metrics", false, "volcar las métricas Prometheus al terminar")

	return cmd
}

// overrideFromFlags copia a dst los valores de flags usados explícitamente,
// que tienen prioridad sobre el archivo.
func overrideFromFlags(cmd *cobra.Command, dst, src *application.Config) {
	f := cmd.Flags()
	if f.Changed("message") {
		dst.Message = src.Message
	}
	if f.Changed("key") {
		dst.Key = src.Key
	}
	if f.Changed("min") {
		dst.MinFlips = src.MinFlips
	}
	if f.Changed("max") {
		dst.MaxFlips = src.MaxFlips
	}
	if f.Changed("step") {
		dst.Step = src.Step
	}
	if f.Changed("trials") {
		dst.Trials = src.Trials
	}
	if f.Changed("seed") {
		dst.Seed = src.Seed
	}
	if f.Changed("codec") {
		dst.Codec = src.Codec
	}
	if f.Changed("escape") {
		dst.Escape = src.Escape
	}
	if f.Changed("hex") {
		dst.ShowHex = src.ShowHex
	}
	if f.Changed("log-level") {
		dst.LogLevel = src.LogLevel
	}
}

func run(stdout, stderr io.Writer, cfg *application.Config, showMetrics bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(level)

	reg := prometheus.NewRegistry()
	metrics, err := instrument.New(reg)
	if err != nil {
		return err
	}

	p, err := pipeline.NewFromConfig(cfg, logger, metrics)
	if err != nil {
		return err
	}

	pres := presentation.NewPresentationLayer(cfg.Escape)
	plaintext, err := pres.CodificarMensaje(cfg.Message)
	if err != nil {
		return err
	}

	cfg.MostrarConfiguracion(stderr)

	res, err := p.Sweep(plaintext, cfg.Intensities(), cfg.Trials)
	if err != nil {
		return err
	}
	pipeline.WriteReport(stdout, res, pres, cfg.ShowHex)

	if showMetrics {
		fmt.Fprintln(stdout)
		if err := instrument.WriteText(stdout, reg); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
