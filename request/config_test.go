package request

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestConfigureDefaults(t *testing.T) {
	c := Config{}

	assert.Nil(t, c.Configure(viper.New()))
	assert.Equal(t, *NewConfig(), c)
}

func TestConfigureFromViper(t *testing.T) {
	v := viper.New()
	v.Set("factory.server_name", "example.com")
	v.Set("factory.remote_addr", "10.0.0.1")
	v.Set("factory.secure", true)
	c := Config{}

	assert.Nil(t, c.Configure(v))
	assert.Equal(t, Config{ServerName: "example.com", RemoteAddr: "10.0.0.1", Secure: true}, c)
}
