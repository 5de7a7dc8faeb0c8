// Command mongoose-sep is a demo driver for the separator engine: it reads
// a Matrix Market graph, conditions it, computes a two-way edge separator,
// and reports the result. It is not part of the library's public API.
package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/nsep/mongoose/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Error().Err(err).Msg("mongoose-sep")
		os.Exit(1)
	}
}
