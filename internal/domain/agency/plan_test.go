package agency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_RequiresPriceIDs(t *testing.T) {
	_, err := NewCatalog("", "price_pro")
	assert.Error(t, err)

	_, err = NewCatalog("price_solo", "")
	assert.Error(t, err)
}

func TestCatalog_PlanByKey(t *testing.T) {
	c, err := NewCatalog("price_solo", "price_pro")
	require.NoError(t, err)

	tests := []struct {
		key           PlanKey
		wantMaxGroups int
		wantPriceID   string
	}{
		{PlanTrial, 1, ""},
		{PlanSoloGroups, 3, "price_solo"},
		{PlanPro, 25, "price_pro"},
		{PlanEnterprise, 0, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			p, ok := c.PlanByKey(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.wantMaxGroups, p.MaxGroups)
			assert.Equal(t, tt.wantPriceID, p.PriceID)
		})
	}

	_, ok := c.PlanByKey("platinum")
	assert.False(t, ok)
}

func TestCatalog_PlanByPriceID(t *testing.T) {
	c, err := NewCatalog("price_solo", "price_pro")
	require.NoError(t, err)

	p, ok := c.PlanByPriceID("price_pro")
	require.True(t, ok)
	assert.Equal(t, PlanPro, p.Key)

	_, ok = c.PlanByPriceID("price_unknown")
	assert.False(t, ok)
}

func TestCatalog_PriceIDForPlan(t *testing.T) {
	c, err := NewCatalog("price_solo", "price_pro")
	require.NoError(t, err)

	priceID, err := c.PriceIDForPlan(PlanSoloGroups)
	require.NoError(t, err)
	assert.Equal(t, "price_solo", priceID)

	// Plans without a self-serve price cannot be checked out.
	_, err = c.PriceIDForPlan(PlanTrial)
	assert.Error(t, err)
	_, err = c.PriceIDForPlan(PlanEnterprise)
	assert.Error(t, err)
}

func TestPlanKey_Purchasable(t *testing.T) {
	assert.True(t, PlanSoloGroups.Purchasable())
	assert.True(t, PlanPro.Purchasable())
	assert.False(t, PlanTrial.Purchasable())
	assert.False(t, PlanEnterprise.Purchasable())
}

func TestPlanKey_IsValid(t *testing.T) {
	assert.True(t, PlanTrial.IsValid())
	assert.True(t, PlanEnterprise.IsValid())
	assert.False(t, PlanKey("platinum").IsValid())
}
