package request

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oasislabs/viewtest/log"
)

const (
	DefaultServerName = "testserver"
	DefaultRemoteAddr = "127.0.0.1"
)

// Config holds the defaults every synthetic request is built with
type Config struct {
	// ServerName is the host of requests built from a relative path
	ServerName string

	// RemoteAddr is the address of the fictitious client
	RemoteAddr string

	// Secure makes requests use https by default
	Secure bool
}

// NewConfig returns the default configuration
func NewConfig() *Config {
	return &Config{
		ServerName: DefaultServerName,
		RemoteAddr: DefaultRemoteAddr,
	}
}

func (c *Config) Log(fields log.Fields) {
	fields.Add("factory.server_name", c.ServerName)
	fields.Add("factory.remote_addr", c.RemoteAddr)
	fields.Add("factory.secure", c.Secure)
}

func (c *Config) Configure(v *viper.Viper) error {
	c.ServerName = v.GetString("factory.server_name")
	if len(c.ServerName) == 0 {
		c.ServerName = DefaultServerName
	}

	c.RemoteAddr = v.GetString("factory.remote_addr")
	if len(c.RemoteAddr) == 0 {
		c.RemoteAddr = DefaultRemoteAddr
	}

	c.Secure = v.GetBool("factory.secure")
	return nil
}

func (c *Config) Bind(v *viper.Viper, cmd *cobra.Command) error {
	cmd.PersistentFlags().String("factory.server_name", DefaultServerName,
		"sets the host of requests built from a relative path")
	cmd.PersistentFlags().String("factory.remote_addr", DefaultRemoteAddr,
		"sets the remote address of synthetic requests")
	cmd.PersistentFlags().Bool("factory.secure", false,
		"builds https requests by default")
	return nil
}
