package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Binder is implemented by every configuration section. Bind registers
// the flags of the section and Configure reads the values back once
// all sources have been merged
type Binder interface {
	Bind(*viper.Viper, *cobra.Command) error
	Configure(*viper.Viper) error
}
