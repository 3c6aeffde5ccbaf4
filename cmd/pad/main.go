package main

import (
	"flag"
	"log"

	"pad/internal/di"
	"pad/internal/structures"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	debug := flag.Bool("debug", false, "mirror logs to stdout")
	flag.Parse()

	_, err := di.InitApp(&structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	})
	if err != nil {
		log.Fatalf("pad: %s", err)
	}
}
