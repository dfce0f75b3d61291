package source_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/rx-price-tracker/internal/config"
	"github.com/donaldgifford/rx-price-tracker/internal/source"
)

func TestRegistry(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Sources: config.SourcesConfig{
			RequestTimeout: 5 * time.Second,
			Storefronts: []config.StorefrontConfig{
				{Name: "Pague Menos", Kind: config.KindVTEX, BaseURL: "https://pm.example"},
				{Name: "Drogasil", Kind: config.KindNextData, BaseURL: "https://ds.example", Disabled: true},
				{Name: "Drogaria São Paulo", Kind: config.KindVTEX, BaseURL: "https://dsp.example"},
			},
		},
	}

	adapters, err := source.Registry(cfg, quietLogger())
	require.NoError(t, err)
	require.Len(t, adapters, 2)

	assert.Equal(t, "Pague Menos", adapters[0].Name())
	assert.Equal(t, "Drogaria São Paulo", adapters[1].Name())

	for _, a := range adapters {
		_, ok := a.(source.ShippingQuoter)
		assert.True(t, ok, "%s should quote shipping", a.Name())
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kind    string
		wantErr bool
	}{
		{name: "vtex", kind: config.KindVTEX},
		{name: "nextdata", kind: config.KindNextData},
		{name: "unknown kind", kind: "magento", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := source.New(config.StorefrontConfig{
				Name:    "Loja",
				Kind:    tt.kind,
				BaseURL: "https://loja.example",
			}, time.Second, quietLogger())

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown storefront kind")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Loja", a.Name())
		})
	}
}
