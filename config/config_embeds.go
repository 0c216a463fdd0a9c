package config

import _ "embed"

// Latest schema version of config.yaml
const LatestVersion = "0.0.1"

//go:embed config.yaml
var DefaultConfigYaml []byte

//go:embed .env.example
var EnvExample string
