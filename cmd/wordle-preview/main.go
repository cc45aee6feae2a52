// Command wordle-preview renders wordle rows and boards outside the browser:
// in the terminal, as the HTML the blog embeds, or as JSON.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-elements/internal/config"
)

func main() {
	config.LoadDotenv()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
