package entity

import (
	"fmt"
	"strings"
)

// Tier labels a selectable model. The distinction is informational only;
// no quota differs between tiers.
type Tier string

const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// Model is one entry of the model dropdown.
type Model struct {
	ID   string
	Tier Tier
}

// Label is the text shown next to the model in the dropdown.
func (m Model) Label() string {
	return fmt.Sprintf("%s (%s)", m.ID, m.Tier)
}

// ModelCatalog holds the two selectable models. Free is the default choice.
type ModelCatalog struct {
	Free Model
	Pro  Model
}

// NewModelCatalog builds a catalog from the free and pro model identifiers.
func NewModelCatalog(freeID, proID string) ModelCatalog {
	return ModelCatalog{
		Free: Model{ID: strings.TrimSpace(freeID), Tier: TierFree},
		Pro:  Model{ID: strings.TrimSpace(proID), Tier: TierPro},
	}
}

// Default returns the model selected when the user makes no choice.
func (c ModelCatalog) Default() Model {
	return c.Free
}

// Models lists the choices in dropdown order.
func (c ModelCatalog) Models() []Model {
	return []Model{c.Free, c.Pro}
}

// Resolve maps a user choice to a catalog entry. The choice may be a tier name
// ("free", "pro") or a model identifier; an empty choice selects the default.
func (c ModelCatalog) Resolve(choice string) (Model, error) {
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return c.Default(), nil
	}
	for _, m := range c.Models() {
		if strings.EqualFold(choice, string(m.Tier)) || choice == m.ID {
			return m, nil
		}
	}
	return Model{}, &ValidationError{
		Field:   "model",
		Message: fmt.Sprintf("model %q is not one of %s, %s", choice, c.Free.ID, c.Pro.ID),
		Err:     ErrUnknownModel,
	}
}
