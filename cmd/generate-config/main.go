// Command generate-config prints the default configuration as YAML
package main

import (
	"os"

	"liarsbar-server/internal/config"

	"gopkg.in/yaml.v2"
)

func main() {
	enc := yaml.NewEncoder(os.Stdout)
	if err := enc.Encode(config.DefaultConfig()); err != nil {
		panic(err)
	}

	if err := enc.Close(); err != nil {
		panic(err)
	}
}
