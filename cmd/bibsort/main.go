package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/arthur-debert/bibsort/internal/cli"
	"github.com/arthur-debert/bibsort/pkg/errors"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if msg := cli.UsageMessage(err); msg != "" {
			fmt.Println(msg)
			os.Exit(1)
		}
		log.Error().
			Err(err).
			Str("code", string(errors.GetErrorCode(err))).
			Fields(errors.GetErrorDetails(err)).
			Msg("bibsort failed")
		os.Exit(1)
	}
}
