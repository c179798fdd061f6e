package application

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"

	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/blockcipher"
	"github.com/Diegoval-Dev/R-Lab2/tolerance-go/pkg/frame"
)

const (
	// DefaultMessage es el mensaje de la demostración
	DefaultMessage = "This is a secret message"
	// DefaultKey es la clave AES-128 de la demostración, en hexadecimal
	DefaultKey = "00112233445566778899aabbccddeeff"
	// DefaultMaxFlips es el último nivel de corrupción del barrido
	DefaultMaxFlips = 25
	// DefaultLogLevel es el nivel de logging por defecto
	DefaultLogLevel = "info"
)

// ErrInvalidConfig envuelve todos los errores de validación
var ErrInvalidConfig = errors.New("configuración inválida")

// Config contiene la configuración de una corrida de demostración
type Config struct {
	Message  string `toml:"message"`   // Texto a cifrar
	Key      string `toml:"key"`       // Clave AES-128 en hexadecimal
	MinFlips int    `toml:"min_flips"` // Primer nivel de corrupción
	MaxFlips int    `toml:"max_flips"` // Último nivel de corrupción (inclusive)
	Step     int    `toml:"step"`      // Incremento entre niveles
	Trials   int    `toml:"trials"`    // Repeticiones por nivel
	Seed     int64  `toml:"seed"`      // 0 = semilla basada en el reloj
	Codec    string `toml:"codec"`     // "hamming" o "none"
	Escape   bool   `toml:"escape"`    // Escapar bytes no imprimibles en el reporte
	ShowHex  bool   `toml:"show_hex"`  // Mostrar el stream codificado en hexadecimal
	LogLevel string `toml:"log_level"` // Nivel de logrus
}

// Default devuelve la configuración de la demostración original
func Default() *Config {
	return &Config{
		Message:  DefaultMessage,
		Key:      DefaultKey,
		MinFlips: 0,
		MaxFlips: DefaultMaxFlips,
		Step:     1,
		Trials:   1,
		Codec:    frame.Hamming74{}.Name(),
		ShowHex:  true,
		LogLevel: DefaultLogLevel,
	}
}

// LoadFile lee un archivo TOML encima de los valores por defecto
func LoadFile(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	return LoadBytes(b)
}

// LoadBytes interpreta b como TOML encima de los valores por defecto
func LoadBytes(b []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return cfg, nil
}

// Validate verifica que la configuración sea válida
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: configuración es nil", ErrInvalidConfig)
	}
	if c.Message == "" {
		return fmt.Errorf("%w: el mensaje no puede estar vacío", ErrInvalidConfig)
	}
	if _, err := blockcipher.ParseKey(c.Key); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.MinFlips < 0 {
		return fmt.Errorf("%w: min_flips no puede ser negativo: %d", ErrInvalidConfig, c.MinFlips)
	}
	if c.MaxFlips < c.MinFlips {
		return fmt.Errorf("%w: max_flips (%d) menor que min_flips (%d)", ErrInvalidConfig, c.MaxFlips, c.MinFlips)
	}
	if c.Step <= 0 {
		return fmt.Errorf("%w: step debe ser mayor a 0: %d", ErrInvalidConfig, c.Step)
	}
	if c.Trials <= 0 {
		return fmt.Errorf("%w: trials debe ser mayor a 0: %d", ErrInvalidConfig, c.Trials)
	}
	if _, err := frame.Lookup(c.Codec); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// KeyBytes decodifica la clave. Asume una configuración validada.
func (c *Config) KeyBytes() ([]byte, error) {
	return blockcipher.ParseKey(c.Key)
}

// Intensities devuelve los niveles de corrupción del barrido, ascendentes
func (c *Config) Intensities() []int {
	if c.Step <= 0 || c.MaxFlips < c.MinFlips {
		return nil
	}
	levels := make([]int, 0, (c.MaxFlips-c.MinFlips)/c.Step+1)
	for n := c.MinFlips; n <= c.MaxFlips; n += c.Step {
		levels = append(levels, n)
	}
	return levels
}

// MostrarConfiguracion muestra la configuración seleccionada
func (c *Config) MostrarConfiguracion(w io.Writer) {
	fmt.Fprintln(w, "📋 Configuración:")
	fmt.Fprintf(w, "   Mensaje: %q\n", c.Message)
	fmt.Fprintf(w, "   Clave: %s\n", c.Key)
	fmt.Fprintf(w, "   Codec: %s\n", strings.ToUpper(c.Codec))
	fmt.Fprintf(w, "   Bits a invertir: %d..%d (paso %d)\n", c.MinFlips, c.MaxFlips, c.Step)
	if c.Trials > 1 {
		fmt.Fprintf(w, "   Repeticiones por nivel: %d\n", c.Trials)
	}
	if c.Seed != 0 {
		fmt.Fprintf(w, "   Semilla: %d\n", c.Seed)
	}
	fmt.Fprintln(w)
}
