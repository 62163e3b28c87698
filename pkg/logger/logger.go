package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gestockhq/gestock-api/pkg/config"
)

// New construye el logger de la aplicación a partir de AppConfig: salida de
// consola legible en development y JSON en cualquier otro entorno, con el
// nombre del servicio como campo fijo. El nivel viene de LOG_LEVEL; un valor
// inválido o vacío cae en info.
func New(cfg config.AppConfig) zerolog.Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Name).
		Logger()

	// Las librerías que escriben por el logger global de zerolog salen por
	// el mismo destino.
	log.Logger = zl

	return zl
}
