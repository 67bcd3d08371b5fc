package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every key read from the environment. Keys
// are mapped by replacing `.` with `_`, so factory.server_name is read
// from VIEWTEST_FACTORY_SERVER_NAME
const EnvPrefix = "VIEWTEST"

type Config interface {
	Binders() []Binder
}

type Parser struct {
	Config Config

	file *File

	cmd *cobra.Command
	v   *viper.Viper
}

// Parse merges the provided arguments, the environment and the
// configuration file and hands the result to every binder. Flags
// not known to the parser are ignored, so the arguments of a test
// binary can be passed as they are
func (p *Parser) Parse(args []string) error {
	if p.cmd.PersistentFlags().Parsed() {
		return ErrAlreadyParsed
	}

	if err := p.cmd.PersistentFlags().Parse(args); err != nil {
		return ErrParseFlags{err}
	}

	// keep file first so that any parameters read from the file are used
	// as defaults for the other flags
	var binders []Binder
	binders = append(binders, p.file)
	binders = append(binders, p.Config.Binders()...)

	for _, c := range binders {
		if err := c.Configure(p.v); err != nil {
			return err
		}
	}

	return nil
}

func (p *Parser) Usage() error {
	return p.cmd.Usage()
}

// Generate creates a parser for config with all the flags of its
// binders registered
func Generate(config Config) (*Parser, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{Use: "viewtest"}
	cmd.PersistentFlags().ParseErrorsWhitelist = pflag.ParseErrorsWhitelist{UnknownFlags: true}

	file := File{}
	var binders []Binder
	binders = append(binders, &file)
	binders = append(binders, config.Binders()...)

	for _, c := range binders {
		if err := c.Bind(v, cmd); err != nil {
			return nil, errors.Wrap(err, "failed to bind flags")
		}
	}

	if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
		return nil, errors.Wrap(err, "failed to bind flags")
	}

	return &Parser{file: &file, Config: config, cmd: cmd, v: v}, nil
}
