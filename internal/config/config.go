// Package config handles .capgen.yaml configuration files.
package config

// Config represents the contents of a .capgen.yaml file. Every field is a
// default for the matching command-line flag; explicit flags always win.
type Config struct {
	Binary       string `yaml:"binary,omitempty"`         // default --binary
	APIBaseURL   string `yaml:"api_base_url,omitempty"`   // default --api-base-url
	OutCLIDir    string `yaml:"out_cli_dir,omitempty"`    // directory for --out-cli defaults
	OutScriptDir string `yaml:"out_script_dir,omitempty"` // directory for --out-script defaults
	ScriptsDir   string `yaml:"scripts_dir,omitempty"`    // default directory for `capgen index`
	NoSimulate   *bool  `yaml:"no_simulate,omitempty"`    // default --no-simulate
}

// FileName is the expected config file name in the working directory.
const FileName = ".capgen.yaml"
