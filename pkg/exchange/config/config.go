// Package config bootstraps the exchange from the environment or an optional
// config file: database connectivity plus the initial global fee and identity
// configuration.
package config

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	pg "github.com/marscorp-games/exchange-server/pkg/database/postgres"
	exchange_data "github.com/marscorp-games/exchange-server/pkg/exchange/data"
	config_store "github.com/marscorp-games/exchange-server/pkg/exchange/data/config"
)

const envPrefix = "exchange"

const (
	defaultPlatformFeeBps = 100
	defaultYieldFeeBps    = 50

	defaultDbHost = "localhost"
	defaultDbPort = 5432
	defaultDbName = "exchange"
)

type Config struct {
	Admin            string
	YieldDistributor string

	PlatformFeeBps uint16
	YieldFeeBps    uint16

	DbUser         string
	DbPassword     string
	DbHost         string
	DbPort         int
	DbName         string
	DbMaxOpenConns int
	DbMaxIdleConns int
}

// Load reads configuration from EXCHANGE_* environment variables, falling
// back to an optional exchange.yaml in the working directory.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("platform_fee_bps", defaultPlatformFeeBps)
	v.SetDefault("yield_fee_bps", defaultYieldFeeBps)
	v.SetDefault("db_host", defaultDbHost)
	v.SetDefault("db_port", defaultDbPort)
	v.SetDefault("db_name", defaultDbName)

	v.SetConfigName("exchange")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "error reading config file")
		}
	}

	conf := &Config{
		Admin:            v.GetString("admin"),
		YieldDistributor: v.GetString("yield_distributor"),

		PlatformFeeBps: uint16(v.GetUint32("platform_fee_bps")),
		YieldFeeBps:    uint16(v.GetUint32("yield_fee_bps")),

		DbUser:         v.GetString("db_user"),
		DbPassword:     v.GetString("db_password"),
		DbHost:         v.GetString("db_host"),
		DbPort:         v.GetInt("db_port"),
		DbName:         v.GetString("db_name"),
		DbMaxOpenConns: v.GetInt("db_max_open_conns"),
		DbMaxIdleConns: v.GetInt("db_max_idle_conns"),
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) validate() error {
	if len(c.Admin) == 0 {
		return errors.New("admin identity is required")
	}
	if len(c.YieldDistributor) == 0 {
		return errors.New("yield distributor identity is required")
	}
	if int(c.PlatformFeeBps)+int(c.YieldFeeBps) > 10000 {
		return errors.New("total fee bps cannot exceed 10000")
	}
	return nil
}

// DatabaseConfig maps the loaded values onto the postgres client config.
func (c *Config) DatabaseConfig() *pg.Config {
	return &pg.Config{
		User:               c.DbUser,
		Password:           c.DbPassword,
		Host:               c.DbHost,
		Port:               c.DbPort,
		DbName:             c.DbName,
		MaxOpenConnections: c.DbMaxOpenConns,
		MaxIdleConnections: c.DbMaxIdleConns,
	}
}

// GlobalConfigRecord is the config store record seeded from this bootstrap
// configuration.
func (c *Config) GlobalConfigRecord() *config_store.Record {
	return &config_store.Record{
		Admin:            c.Admin,
		YieldDistributor: c.YieldDistributor,

		PlatformFeeBps: c.PlatformFeeBps,
		YieldFeeBps:    c.YieldFeeBps,
	}
}

// Bootstrap seeds the global config record if none exists yet. Fee changes
// after the first boot go through the config store directly so history is
// kept.
func Bootstrap(ctx context.Context, conf *Config, data exchange_data.ExchangeData) error {
	_, err := data.GetGlobalConfig(ctx)
	if err == nil {
		return nil
	}
	if err != config_store.ErrConfigNotFound {
		return err
	}

	return data.PutGlobalConfig(ctx, conf.GlobalConfigRecord())
}
