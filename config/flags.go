package config

import "flag"

// CliArgs holds the parsed command line flags; nil until ParseArgs runs.
var CliArgs *CliConfig

// CliConfig is the set of flags the server accepts.
type CliConfig struct {
	ConfigFile string
	Debug      bool
	Version    bool
}

// ParseArgs parses os.Args into CliArgs. It panics if called twice.
func ParseArgs() {
	if CliArgs != nil {
		panic("already defined")
	}
	CliArgs = &CliConfig{}
	flag.StringVar(&CliArgs.ConfigFile, "config", "", "Path to an optional YAML config file")
	flag.BoolVar(&CliArgs.Debug, "d", false, "Enable debug mode")
	flag.BoolVar(&CliArgs.Debug, "debug", false, "Enable debug mode")
	flag.BoolVar(&CliArgs.Version, "v", false, "Print version and exit")
	flag.BoolVar(&CliArgs.Version, "version", false, "Print version and exit")
	flag.Parse()
}
