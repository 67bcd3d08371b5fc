package config

import (
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// File is the binder that reads an optional toml or yaml file. Values
// in the file are used as defaults for all the other keys
type File struct {
	Path string
}

func (f *File) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String("config.path", "", "sets the configuration file")
	return nil
}

func (f *File) Configure(v *viper.Viper) error {
	f.Path = v.GetString("config.path")
	if len(f.Path) == 0 {
		return nil
	}

	ext := strings.TrimPrefix(path.Ext(f.Path), ".")
	if ext != "toml" && ext != "yaml" {
		return ErrInvalidValue{Key: "config.path", InvalidValue: f.Path, Values: []string{"*.toml", "*.yaml"}}
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return errors.Wrap(err, "failed to open config file")
	}

	defer func() { _ = file.Close() }()
	v.SetConfigType(ext)
	if err := v.ReadConfig(file); err != nil {
		return errors.Wrap(err, "failed to read config file")
	}

	return nil
}
