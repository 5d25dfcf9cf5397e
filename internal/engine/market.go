package engine

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/tatianab/treasure-hunter/internal/models"
)

const swordAuraMessage = "The sword's aura scared the shopkeeper and he gives you the item for free."

// Market runs the shop's buy and sell dialogs.
type Market struct {
	catalog  *models.Catalog
	markdown float64
}

// NewMarket creates a shop that buys items back at markdown times their price.
func NewMarket(cat *models.Catalog, markdown float64) *Market {
	return &Market{catalog: cat, markdown: markdown}
}

// Markdown is the fraction of the price paid when buying items back.
func (m *Market) Markdown() float64 { return m.markdown }

// QuoteBuy is the price of an item for this hunter, or 0 when it is not
// stocked. The samurai sword is stocked but costs nothing.
func (m *Market) QuoteBuy(item string, h Adventurer) int {
	it, ok := m.stocked(item, h.IsSamuraiMode())
	if !ok {
		return 0
	}
	return it.Price
}

// QuoteSell is what the shop pays for an item: the buy price times the
// markdown, rounded down.
func (m *Market) QuoteSell(item string) int {
	it, ok := m.stocked(item, false)
	if !ok {
		return 0
	}
	return int(math.Floor(float64(it.Price) * m.markdown))
}

func (m *Market) stocked(item string, samurai bool) (models.Item, bool) {
	it, ok := m.catalog.Lookup(item)
	if !ok || (it.SamuraiOnly && !samurai) {
		return models.Item{}, false
	}
	return it, true
}

// Listing is the shop's price list for this hunter.
func (m *Market) Listing(h Adventurer) string {
	var b strings.Builder
	for _, it := range m.catalog.Items {
		if it.SamuraiOnly && !h.IsSamuraiMode() {
			continue
		}
		fmt.Fprintf(&b, "%s: %d gold\n", titleCase(it.Name), it.Price)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// EnterBuy runs the whole purchase dialog and returns the news to show
// once the hunter walks out.
func (m *Market) EnterBuy(ctx context.Context, d Dialog, h Adventurer) (string, error) {
	d.Display("Welcome to the shop! We have the finest wares in town.\nCurrently we have the following items:")
	d.Display(m.Listing(h))
	item, err := d.Ask(ctx, "What're you lookin' to buy? ")
	if err != nil {
		return "", err
	}
	if err := m.BuyFlow(ctx, d, item, h); err != nil {
		return "", err
	}
	return "You left the shop.", nil
}

// EnterSell runs the whole sale dialog.
func (m *Market) EnterSell(ctx context.Context, d Dialog, h Adventurer) (string, error) {
	d.Display(fmt.Sprintf("You currently have the following items: %s", strings.Join(h.Inventory(), ", ")))
	item, err := d.Ask(ctx, "What're you lookin' to sell? ")
	if err != nil {
		return "", err
	}
	if err := m.SellFlow(ctx, d, item, h); err != nil {
		return "", err
	}
	return "You left the shop.", nil
}

// BuyFlow quotes an item, asks for confirmation and completes the sale.
//
// A hunter carrying a sword always hears that the item is free, but only
// boots are actually handed over without payment. Anything else is still
// charged at full price.
func (m *Market) BuyFlow(ctx context.Context, d Dialog, item string, h Adventurer) error {
	item = strings.ToLower(strings.TrimSpace(item))
	price := m.QuoteBuy(item, h)
	if price == 0 && !(item == models.ItemSword && h.IsSamuraiMode()) {
		d.Display("We ain't got none of those.")
		return nil
	}

	ok, err := confirm(ctx, d, fmt.Sprintf("It'll cost you %d gold. Buy it (y/n)? ", price))
	if err != nil || !ok {
		return err
	}

	switch {
	case h.HasItem(models.ItemSword) && item == models.ItemBoots:
		m.grantUnderSwordAura(d, item, h)
	case h.HasItem(models.ItemSword):
		m.chargeUnderSwordAura(d, item, price, h)
	default:
		m.paidPurchase(d, item, price, h)
	}
	return nil
}

// grantUnderSwordAura hands the item over without touching the hunter's gold.
func (m *Market) grantUnderSwordAura(d Dialog, item string, h Adventurer) {
	d.Display(swordAuraMessage)
	if h.AddItem(item) {
		d.Display(fmt.Sprintf("Ye' got yerself a %s. Come again soon.", item))
	} else {
		d.Display("You've already got one of those!")
	}
}

// chargeUnderSwordAura promises a free item and then charges for it anyway.
func (m *Market) chargeUnderSwordAura(d Dialog, item string, price int, h Adventurer) {
	d.Display(swordAuraMessage)
	m.paidPurchase(d, item, price, h)
}

func (m *Market) paidPurchase(d Dialog, item string, price int, h Adventurer) {
	if h.Buy(item, price) {
		d.Display(fmt.Sprintf("Ye' got yerself a %s. Come again soon.", item))
		return
	}
	d.Display("Hmm, either you don't have enough gold or you've already got one of those!")
}

// SellFlow quotes a buy-back price, asks for confirmation and completes the sale.
func (m *Market) SellFlow(ctx context.Context, d Dialog, item string, h Adventurer) error {
	item = strings.ToLower(strings.TrimSpace(item))
	price := m.QuoteSell(item)
	if price == 0 {
		d.Display("We don't want none of those.")
		return nil
	}

	ok, err := confirm(ctx, d, fmt.Sprintf("It'll get you %d gold. Sell it (y/n)? ", price))
	if err != nil || !ok {
		return err
	}

	if h.Sell(item, price) {
		d.Display("Pleasure doin' business with you.")
		return nil
	}
	d.Display("Stop stringin' me along!")
	return nil
}

func confirm(ctx context.Context, d Dialog, question string) (bool, error) {
	answer, err := d.Ask(ctx, question)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
