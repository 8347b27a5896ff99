// Package config loads configuration structs from environment variables,
// with optional .env file support for local development. Fields are declared
// with `env:` tags:
//
//	type ServerConfig struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	config.MustLoad(&cfg)
package config
