package log

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config defines how the root logger of a fixture is built
type Config struct {
	Level  string
	Output string
	Format string
}

func (c *Config) Log(fields Fields) {
	fields.Add("logging.level", c.Level)
	fields.Add("logging.output", c.Output)
	fields.Add("logging.format", c.Format)
}

func (c *Config) Configure(v *viper.Viper) error {
	c.Level = v.GetString("logging.level")
	if len(c.Level) == 0 {
		c.Level = "warn"
	}

	c.Output = v.GetString("logging.output")
	if len(c.Output) == 0 {
		c.Output = "stderr"
	}

	c.Format = v.GetString("logging.format")
	if len(c.Format) == 0 {
		c.Format = "json"
	}

	return nil
}

func (c *Config) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String("logging.level", "warn",
		"sets the minimum logging level for the logger")
	cmd.PersistentFlags().String("logging.output", "stderr",
		"sets where log entries are written: stdout, stderr or discard")
	cmd.PersistentFlags().String("logging.format", "json",
		"sets the log entry format: json or text")
	return nil
}
