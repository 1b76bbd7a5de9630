package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	exchange_data "github.com/marscorp-games/exchange-server/pkg/exchange/data"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("EXCHANGE_ADMIN", "admin_treasury")
	t.Setenv("EXCHANGE_YIELD_DISTRIBUTOR", "yield_distributor")

	conf, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "admin_treasury", conf.Admin)
	assert.Equal(t, "yield_distributor", conf.YieldDistributor)
	assert.EqualValues(t, defaultPlatformFeeBps, conf.PlatformFeeBps)
	assert.EqualValues(t, defaultYieldFeeBps, conf.YieldFeeBps)
	assert.Equal(t, defaultDbHost, conf.DatabaseConfig().Host)
	assert.Equal(t, defaultDbPort, conf.DatabaseConfig().Port)
}

func TestLoad_MissingIdentities(t *testing.T) {
	_, err := Load()
	assert.Error(t, err)
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	data := exchange_data.NewTestDataProvider()

	conf := &Config{
		Admin:            "admin_treasury",
		YieldDistributor: "yield_distributor",
		PlatformFeeBps:   100,
		YieldFeeBps:      50,
	}

	require.NoError(t, Bootstrap(ctx, conf, data))

	record, err := data.GetGlobalConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin_treasury", record.Admin)
	assert.EqualValues(t, 100, record.PlatformFeeBps)

	// A second bootstrap never overwrites a live config.
	conf.PlatformFeeBps = 500
	require.NoError(t, Bootstrap(ctx, conf, data))

	record, err = data.GetGlobalConfig(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 100, record.PlatformFeeBps)
}
