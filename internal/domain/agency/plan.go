package agency

import "fmt"

// PlanKey identifies one of the static subscription tiers. Plans are
// configuration, not persisted entities.
type PlanKey string

const (
	PlanTrial      PlanKey = "trial"
	PlanSoloGroups PlanKey = "solo_groups"
	PlanPro        PlanKey = "pro"
	PlanEnterprise PlanKey = "enterprise"
)

func (k PlanKey) IsValid() bool {
	switch k {
	case PlanTrial, PlanSoloGroups, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// Purchasable reports whether the plan can be bought through self-serve
// checkout. Trial is implicit and enterprise is sold manually.
func (k PlanKey) Purchasable() bool {
	return k == PlanSoloGroups || k == PlanPro
}

// Plan couples a tier with its group limit and the provider price backing it.
// MaxGroups of 0 means unlimited.
type Plan struct {
	Key       PlanKey
	MaxGroups int
	PriceID   string
}

// Catalog is the static price-to-plan mapping built from configuration at
// startup. Price ids differ per environment; the tiers do not.
type Catalog struct {
	plans     map[PlanKey]Plan
	byPriceID map[string]Plan
}

// NewCatalog builds the plan catalog from the externally supplied price ids.
func NewCatalog(priceSoloGroups, pricePro string) (*Catalog, error) {
	if priceSoloGroups == "" || pricePro == "" {
		return nil, fmt.Errorf("price ids for solo_groups and pro plans are required")
	}

	plans := []Plan{
		{Key: PlanTrial, MaxGroups: 1},
		{Key: PlanSoloGroups, MaxGroups: 3, PriceID: priceSoloGroups},
		{Key: PlanPro, MaxGroups: 25, PriceID: pricePro},
		{Key: PlanEnterprise, MaxGroups: 0},
	}

	c := &Catalog{
		plans:     make(map[PlanKey]Plan, len(plans)),
		byPriceID: make(map[string]Plan, len(plans)),
	}
	for _, p := range plans {
		c.plans[p.Key] = p
		if p.PriceID != "" {
			c.byPriceID[p.PriceID] = p
		}
	}
	return c, nil
}

// PlanByKey returns the plan for a tier key.
func (c *Catalog) PlanByKey(key PlanKey) (Plan, bool) {
	p, ok := c.plans[key]
	return p, ok
}

// PlanByPriceID resolves a provider price id back to its plan. Unknown price
// ids return false; webhook handlers treat that as "leave planKey unchanged".
func (c *Catalog) PlanByPriceID(priceID string) (Plan, bool) {
	p, ok := c.byPriceID[priceID]
	return p, ok
}

// PriceIDForPlan returns the provider price id for a purchasable plan.
func (c *Catalog) PriceIDForPlan(key PlanKey) (string, error) {
	p, ok := c.plans[key]
	if !ok || p.PriceID == "" {
		return "", fmt.Errorf("no price configured for plan %q", key)
	}
	return p.PriceID, nil
}
