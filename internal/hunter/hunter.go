// Package hunter holds the adventurer's ledger: gold, a one-of-each kit and
// the treasure kinds collected so far.
package hunter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tatianab/treasure-hunter/internal/models"
)

// Hunter is the player's adventurer.
type Hunter struct {
	name      string
	gold      int
	samurai   bool
	bankrupt  bool
	kit       []string
	treasures []models.Treasure
}

// New creates a hunter with an empty kit.
func New(name string, gold int, samurai bool) *Hunter {
	return &Hunter{
		name:    name,
		gold:    gold,
		samurai: samurai,
	}
}

func (h *Hunter) Name() string        { return h.name }
func (h *Hunter) Gold() int           { return h.gold }
func (h *Hunter) IsSamuraiMode() bool { return h.samurai }
func (h *Hunter) IsBankrupt() bool    { return h.bankrupt }

// HasItem reports whether the item is in the kit.
func (h *Hunter) HasItem(item string) bool {
	return slices.Contains(h.kit, strings.ToLower(item))
}

// AddItem puts the item in the kit. It returns false if one is already held.
func (h *Hunter) AddItem(item string) bool {
	item = strings.ToLower(item)
	if item == "" || h.HasItem(item) {
		return false
	}
	h.kit = append(h.kit, item)
	return true
}

// RemoveItem takes the item out of the kit. It returns false if it was not held.
func (h *Hunter) RemoveItem(item string) bool {
	i := slices.Index(h.kit, strings.ToLower(item))
	if i < 0 {
		return false
	}
	h.kit = slices.Delete(h.kit, i, i+1)
	return true
}

// Buy pays cost for the item. It fails without a charge when the hunter
// cannot afford it or already owns one.
func (h *Hunter) Buy(item string, cost int) bool {
	if cost > h.gold || h.HasItem(item) {
		return false
	}
	h.gold -= cost
	h.AddItem(item)
	return true
}

// Sell gives up the item for cost gold. It fails when the item is not held
// or is worthless.
func (h *Hunter) Sell(item string, cost int) bool {
	if cost <= 0 || !h.RemoveItem(item) {
		return false
	}
	h.gold += cost
	return true
}

// ChangeGold adjusts the balance. Dropping below zero bankrupts the hunter;
// the balance is clamped at zero and bankruptcy is permanent.
func (h *Hunter) ChangeGold(delta int) {
	h.gold += delta
	if h.gold < 0 {
		h.gold = 0
		h.bankrupt = true
	}
}

// AddTreasure records a collectible treasure kind. Dust and kinds already
// owned are refused.
func (h *Hunter) AddTreasure(kind models.Treasure) bool {
	if !kind.IsCollectible() || slices.Contains(h.treasures, kind) {
		return false
	}
	h.treasures = append(h.treasures, kind)
	return true
}

// OwnsAllTreasureKinds reports whether every collectible kind has been found.
func (h *Hunter) OwnsAllTreasureKinds() bool {
	for _, kind := range models.CollectibleTreasures {
		if !slices.Contains(h.treasures, kind) {
			return false
		}
	}
	return true
}

// Inventory returns the kit in the order items were acquired.
func (h *Hunter) Inventory() []string {
	return slices.Clone(h.kit)
}

// Treasures returns the collected treasure kinds in the order found.
func (h *Hunter) Treasures() []models.Treasure {
	return slices.Clone(h.treasures)
}

// InfoString is the one-line status shown every turn.
func (h *Hunter) InfoString() string {
	s := fmt.Sprintf("%s has %d gold", h.name, h.gold)
	if len(h.kit) > 0 {
		s += " and " + strings.Join(h.kit, ", ")
	}
	s += "."
	if len(h.treasures) > 0 {
		names := make([]string, len(h.treasures))
		for i, t := range h.treasures {
			names[i] = string(t)
		}
		s += " Treasures found: " + strings.Join(names, ", ") + "."
	}
	return s
}
