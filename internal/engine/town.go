package engine

import (
	"fmt"

	"github.com/tatianab/treasure-hunter/internal/chance"
	"github.com/tatianab/treasure-hunter/internal/models"
)

const (
	calmTroubleChance  = 0.33
	toughTroubleChance = 0.66
	itemBreakChance    = 0.5
	digSuccessChance   = 0.5
	minBrawlGold       = 1
	maxBrawlGold       = 10
	maxDugGold         = 20
)

// Adventurer is the hunter as seen by towns and the shop.
type Adventurer interface {
	Name() string
	IsSamuraiMode() bool
	HasItem(item string) bool
	AddItem(item string) bool
	RemoveItem(item string) bool
	Buy(item string, cost int) bool
	Sell(item string, cost int) bool
	ChangeGold(delta int)
	AddTreasure(kind models.Treasure) bool
	IsBankrupt() bool
	OwnsAllTreasureKinds() bool
	Inventory() []string
}

// Progress records which one-shot actions a town has used up. It only ever
// gains steps.
type Progress uint8

const (
	ProgressFresh          Progress = 0
	ProgressSearched       Progress = 1
	ProgressDug            Progress = 2
	ProgressSearchedAndDug Progress = ProgressSearched | ProgressDug
)

// Has reports whether step has been taken.
func (p Progress) Has(step Progress) bool {
	return p&step == step
}

// With returns p with step taken.
func (p Progress) With(step Progress) Progress {
	return p | step
}

func (p Progress) String() string {
	switch p {
	case ProgressFresh:
		return "fresh"
	case ProgressSearched:
		return "searched"
	case ProgressDug:
		return "dug"
	case ProgressSearchedAndDug:
		return "searched-and-dug"
	default:
		return "unknown"
	}
}

// BrawlOutcome is the result of the most recent brawl in a town.
type BrawlOutcome int

const (
	BrawlNone BrawlOutcome = iota
	BrawlWon
	BrawlLost
)

// Town is one stop on the hunt. Terrain, treasure and toughness are drawn
// once in NewTown and never change.
type Town struct {
	terrain     models.Terrain
	treasure    models.Treasure
	tough       bool
	unbreakable bool
	progress    Progress
	brawl       BrawlOutcome
	news        string
	rng         chance.Source
}

// NewTown draws a town's terrain, toughness and hidden treasure, in that order.
func NewTown(cat *models.Catalog, settings models.Settings, rng chance.Source) *Town {
	t := &Town{
		unbreakable: settings.UnbreakableGear,
		rng:         rng,
	}
	t.terrain = cat.Terrains[rng.Intn(len(cat.Terrains))]
	t.tough = chance.Roll(rng, settings.Toughness)
	t.treasure = cat.TreasureForRoll(rng.Intn(cat.TotalTreasureWeight()))
	return t
}

func (t *Town) Terrain() models.Terrain   { return t.terrain }
func (t *Town) Treasure() models.Treasure { return t.treasure }
func (t *Town) IsTough() bool             { return t.tough }
func (t *Town) Progress() Progress        { return t.progress }
func (t *Town) LastBrawl() BrawlOutcome   { return t.brawl }

// LatestNews is the message from the last thing that happened here.
func (t *Town) LatestNews() string { return t.news }

// Welcome greets an arriving hunter.
func (t *Town) Welcome(name string) string {
	t.news = fmt.Sprintf("Welcome to town, %s.", name)
	if t.tough {
		t.news += "\nIt's pretty rough around here, so watch yourself."
	} else {
		t.news += "\nWe're just a sleepy little town with mild mannered folk."
	}
	return t.news
}

// InfoString describes the town in one line.
func (t *Town) InfoString() string {
	return fmt.Sprintf("This nice little town is surrounded by %s.", t.terrain.Name)
}

// LeaveTown tries to cross the terrain. In the jungle a sword is used in
// place of a machete, even when both are held. The item used may break.
func (t *Town) LeaveTown(h Adventurer) bool {
	item := t.crossingItem(h)
	if item == "" {
		t.news = fmt.Sprintf("You can't leave town, %s. You don't have a %s.", h.Name(), t.terrain.Requires)
		return false
	}

	t.news = fmt.Sprintf("You used your %s to cross the %s.", item, t.terrain.Name)
	if t.itemBreaks() {
		h.RemoveItem(item)
		t.news += fmt.Sprintf("\nUnfortunately, you lost your %s.", item)
	}
	return true
}

func (t *Town) crossingItem(h Adventurer) string {
	if t.terrain.Name == models.TerrainJungle && h.HasItem(models.ItemSword) {
		return models.ItemSword
	}
	if h.HasItem(t.terrain.Requires) {
		return t.terrain.Requires
	}
	return ""
}

func (t *Town) itemBreaks() bool {
	if t.unbreakable {
		return false
	}
	return chance.Roll(t.rng, itemBreakChance)
}

// TroubleChance is the probability of finding a brawl here. It is also the
// probability of losing one without a sword.
func (t *Town) TroubleChance() float64 {
	if t.tough {
		return toughTroubleChance
	}
	return calmTroubleChance
}

// LookForTrouble picks a fight for gold. A sword wins without a fight.
func (t *Town) LookForTrouble(h Adventurer) string {
	odds := t.TroubleChance()
	if !chance.Roll(t.rng, odds) {
		t.news = "You couldn't find any trouble."
		return t.news
	}

	gold := chance.Between(t.rng, minBrawlGold, maxBrawlGold)
	msg := "You want trouble, stranger! You got it!"
	switch {
	case h.HasItem(models.ItemSword):
		msg += "\nSorry, please forgive me."
		msg += fmt.Sprintf("\nThe brawler, seeing your sword, surrendered and gave you %d gold.", gold)
		h.ChangeGold(gold)
		t.brawl = BrawlWon
	case chance.Roll(t.rng, 1-odds):
		msg += "\nOof! Umph! Ow!\nOkay, stranger! You proved yer mettle. Here, take my gold."
		msg += fmt.Sprintf("\nYou won the brawl and receive %d gold.", gold)
		h.ChangeGold(gold)
		t.brawl = BrawlWon
	default:
		msg += "\nOof! Umph! Ow!\nThat'll teach you to go lookin' fer trouble in MY town! Now pay up!"
		msg += fmt.Sprintf("\nYou lost the brawl and pay %d gold.", gold)
		h.ChangeGold(-gold)
		t.brawl = BrawlLost
	}

	if t.brawl == BrawlWon {
		t.news = "You won a brawl."
	} else {
		t.news = "You lost a brawl."
	}
	return msg
}

// SearchTown hunts for the town's treasure. Only the first search counts.
func (t *Town) SearchTown(h Adventurer) string {
	if t.progress.Has(ProgressSearched) {
		t.news = "You have already searched this town!"
		return t.news
	}
	t.progress = t.progress.With(ProgressSearched)

	switch {
	case !t.treasure.IsCollectible():
		t.news = fmt.Sprintf("You found %s... womp womp.", t.treasure)
	case h.AddTreasure(t.treasure):
		t.news = fmt.Sprintf("You found a %s!", t.treasure)
	default:
		t.news = fmt.Sprintf("You have already found a %s.", t.treasure)
	}
	return t.news
}

// DigForGold digs once per town with a shovel.
func (t *Town) DigForGold(h Adventurer) string {
	switch {
	case t.progress.Has(ProgressDug):
		t.news = "You already dug for gold in this town."
		return t.news
	case !h.HasItem(models.ItemShovel):
		t.news = "You can't dig for gold without a shovel. Try the shop."
		return t.news
	}
	t.progress = t.progress.With(ProgressDug)

	if !chance.Roll(t.rng, digSuccessChance) {
		t.news = "You dug but only found dirt."
		return t.news
	}
	gold := chance.Between(t.rng, 0, maxDugGold)
	h.ChangeGold(gold)
	t.news = fmt.Sprintf("You dug up %d gold.", gold)
	return t.news
}
