package engine

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/treasure-hunter/internal/hunter"
)

func TestQuoteBuy(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)
	plain := hunter.New("Ada", 0, false)
	samurai := hunter.New("Ada", 0, true)

	assert.Equal(t, 4, m.QuoteBuy("rope", plain))
	assert.Equal(t, 50, m.QuoteBuy("Boots", plain))
	assert.Equal(t, 0, m.QuoteBuy("lantern", plain))
	assert.Equal(t, 0, m.QuoteBuy("sword", plain))
	assert.Equal(t, 0, m.QuoteBuy("sword", samurai))
	assert.Equal(t, 8, m.QuoteBuy("shovel", samurai))
}

func TestQuoteSellIsMarkedDownBuyPrice(t *testing.T) {
	cat := testCatalog(t)
	h := hunter.New("Ada", 0, false)

	for _, markdown := range []float64{0.25, 0.5, 1.0} {
		m := NewMarket(cat, markdown)
		for _, it := range cat.Items {
			want := int(math.Floor(float64(m.QuoteBuy(it.Name, h)) * markdown))
			assert.Equal(t, want, m.QuoteSell(it.Name), "%s at markdown %v", it.Name, markdown)
		}
	}
}

func TestQuoteSellHardPrices(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.25)

	want := map[string]int{
		"water":   0,
		"rope":    1,
		"machete": 1,
		"horse":   3,
		"boat":    5,
		"boots":   12,
		"shovel":  2,
		"sword":   0,
		"lantern": 0,
	}
	for item, price := range want {
		assert.Equal(t, price, m.QuoteSell(item), item)
	}
}

func TestBuyRope(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)
	d, out := newDialog("y")
	h := hunterWith(10)

	require.NoError(t, m.BuyFlow(context.Background(), d, "rope", h))

	assert.Equal(t, 6, h.Gold())
	assert.True(t, h.HasItem("rope"))
	assert.Contains(t, out.text(), "It'll cost you 4 gold.")
	assert.Contains(t, out.last(), "Ye' got yerself a rope")
}

func TestBuyDeclined(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)
	d, out := newDialog("n")
	h := hunterWith(10)

	require.NoError(t, m.BuyFlow(context.Background(), d, "rope", h))

	assert.Equal(t, 10, h.Gold())
	assert.False(t, h.HasItem("rope"))
	assert.Equal(t, "It'll cost you 4 gold. Buy it (y/n)? ", out.last())
}

func TestBuyNotStocked(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)

	for _, item := range []string{"lantern", "sword", ""} {
		d, out := newDialog()
		h := hunterWith(100)

		require.NoError(t, m.BuyFlow(context.Background(), d, item, h))
		assert.Equal(t, "We ain't got none of those.", out.last(), item)
		assert.Equal(t, 100, h.Gold())
		assert.Empty(t, h.Inventory())
	}
}

func TestBuyRefusedForFundsOrDuplicate(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)
	const refusal = "Hmm, either you don't have enough gold or you've already got one of those!"

	poor := hunterWith(3)
	d, out := newDialog("y")
	require.NoError(t, m.BuyFlow(context.Background(), d, "rope", poor))
	assert.Equal(t, refusal, out.last())
	assert.Equal(t, 3, poor.Gold())

	owner := hunterWith(30, "rope")
	d, out = newDialog("Y")
	require.NoError(t, m.BuyFlow(context.Background(), d, "rope", owner))
	assert.Equal(t, refusal, out.last())
	assert.Equal(t, 30, owner.Gold())
}

func TestSamuraiBuysSword(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)
	d, out := newDialog("y")
	h := hunter.New("Ada", 0, true)

	require.NoError(t, m.BuyFlow(context.Background(), d, "SWORD", h))

	assert.True(t, h.HasItem("sword"))
	assert.Equal(t, 0, h.Gold())
	assert.Contains(t, out.text(), "It'll cost you 0 gold.")
}

func TestSwordGrantsBootsForFree(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)
	d, out := newDialog("y")
	h := hunterWith(0, "sword")

	require.NoError(t, m.BuyFlow(context.Background(), d, "boots", h))

	assert.True(t, h.HasItem("boots"))
	assert.Equal(t, 0, h.Gold())
	assert.Contains(t, out.text(), swordAuraMessage)
}

func TestSwordAuraStillChargesForOtherItems(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)
	d, out := newDialog("y")
	h := hunterWith(10, "sword")

	require.NoError(t, m.BuyFlow(context.Background(), d, "water", h))

	assert.Contains(t, out.text(), swordAuraMessage)
	assert.True(t, h.HasItem("water"))
	assert.Equal(t, 8, h.Gold())
}

func TestSwordAuraCannotBuyWhatItCannotAfford(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)
	d, out := newDialog("y")
	h := hunterWith(5, "sword")

	require.NoError(t, m.BuyFlow(context.Background(), d, "boat", h))

	assert.Contains(t, out.text(), swordAuraMessage)
	assert.False(t, h.HasItem("boat"))
	assert.Equal(t, 5, h.Gold())
}

func TestSwordBootsAlreadyOwned(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)
	d, out := newDialog("y")
	h := hunterWith(0, "sword", "boots")

	require.NoError(t, m.BuyFlow(context.Background(), d, "boots", h))

	assert.Equal(t, "You've already got one of those!", out.last())
	assert.Equal(t, []string{"sword", "boots"}, h.Inventory())
}

func TestSell(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)
	d, out := newDialog("y")
	h := hunterWith(0, "horse")

	require.NoError(t, m.SellFlow(context.Background(), d, "Horse", h))

	assert.Equal(t, 6, h.Gold())
	assert.False(t, h.HasItem("horse"))
	assert.Contains(t, out.text(), "It'll get you 6 gold.")
	assert.Equal(t, "Pleasure doin' business with you.", out.last())
}

func TestSellNotWanted(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.25)

	for _, item := range []string{"water", "sword", "lantern"} {
		d, out := newDialog()
		h := hunterWith(0, item)

		require.NoError(t, m.SellFlow(context.Background(), d, item, h))
		assert.Equal(t, "We don't want none of those.", out.last(), item)
		assert.True(t, h.HasItem(item))
	}
}

func TestSellItemNotHeld(t *testing.T) {
	m := NewMarket(testCatalog(t), 1.0)
	d, out := newDialog("y")
	h := hunterWith(3)

	require.NoError(t, m.SellFlow(context.Background(), d, "boat", h))

	assert.Equal(t, "Stop stringin' me along!", out.last())
	assert.Equal(t, 3, h.Gold())
}

func TestSellDeclined(t *testing.T) {
	m := NewMarket(testCatalog(t), 1.0)
	d, _ := newDialog("no")
	h := hunterWith(0, "boat")

	require.NoError(t, m.SellFlow(context.Background(), d, "boat", h))

	assert.True(t, h.HasItem("boat"))
	assert.Equal(t, 0, h.Gold())
}

func TestEnterBuyListsSwordOnlyForSamurai(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)

	d, out := newDialog("rope", "n")
	news, err := m.EnterBuy(context.Background(), d, hunter.New("Ada", 10, false))
	require.NoError(t, err)
	assert.Equal(t, "You left the shop.", news)
	assert.Contains(t, out.text(), "Boots: 50 gold")
	assert.NotContains(t, out.text(), "Sword")

	d, out = newDialog("rope", "n")
	_, err = m.EnterBuy(context.Background(), d, hunter.New("Ada", 10, true))
	require.NoError(t, err)
	assert.Contains(t, out.text(), "Sword: 0 gold")
}

func TestEnterSellListsInventory(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)
	d, out := newDialog("boat", "y")
	h := hunterWith(0, "boat", "rope")

	news, err := m.EnterSell(context.Background(), d, h)
	require.NoError(t, err)

	assert.Equal(t, "You left the shop.", news)
	assert.Contains(t, out.text(), "boat, rope")
	assert.Equal(t, 10, h.Gold())
}

func TestShopDialogStopsOnInputError(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)
	d, _ := newDialog("rope")
	h := hunterWith(10)

	_, err := m.EnterBuy(context.Background(), d, h)
	assert.Error(t, err)
	assert.Equal(t, 10, h.Gold())
}

// plainDialog answers without trimming what the player typed.
type plainDialog struct {
	answers []string
	out     recordingOutput
}

func (d *plainDialog) Display(text string) { d.out.Display(text) }

func (d *plainDialog) Ask(_ context.Context, question string) (string, error) {
	d.out.Display(question)
	answer := d.answers[0]
	d.answers = d.answers[1:]
	return answer, nil
}

func TestConfirmIgnoresSurroundingSpace(t *testing.T) {
	m := NewMarket(testCatalog(t), 0.5)
	d := &plainDialog{answers: []string{" Y \t"}}
	h := hunterWith(10)

	require.NoError(t, m.BuyFlow(context.Background(), d, "rope", h))

	assert.True(t, h.HasItem("rope"))
	assert.Equal(t, 6, h.Gold())
}
