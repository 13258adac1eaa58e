/*
Package synthetic generates retail transaction data that mimics the
structure of real purchase histories: a fixed product catalog split
into popularity tiers, with transaction sizes drawn from a normal
distribution. Generation is fully seeded and reproducible.
*/
package synthetic

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/basketlab/fpgrowth/basket"
)

// catalog is a sample of realistic retail item labels. The leading
// slices feed the popularity tiers below.
var catalog = []string{
	"white hanging heart t-light holder", "white metal lantern",
	"cream cupid hearts coat hanger", "knitted union flag hot water bottle",
	"red woolly hottie white heart", "set 7 babushka nesting boxes",
	"glass star frosted t-light holder", "spaceboy lunch box",
	"robot lunch box", "dolly girl lunch box",
	"jumbo bag red retrospot", "jumbo bag pink polkadot",
	"lunch bag red retrospot", "lunch bag black skull",
	"regency cakestand 3 tier",

	"pink regency teacup and saucer", "green regency teacup and saucer",
	"roses regency teacup and saucer", "vintage doily bunting",
	"pack of 72 retrospot cake cases", "pack of 60 pink paisley cake cases",
	"paper chain kit vintage christmas", "red retrospot paper napkins",
	"wooden box of dominoes", "spotty bunting",
	"baking set 9 piece retrospot", "alarm clock bakelike red",
	"alarm clock bakelike green", "alarm clock bakelike pink",
	"jumbo storage bag suki",

	"jumbo shopper vintage red paisley", "party bunting",
	"bunting flag red", "bunting flag pink", "bunting flag blue",
	"red toadstool led night light", "chocolate hot water bottle",
	"rubber ducky hot water bottle", "spotty pencil box",
	"mini paint set vintage", "spotty water bottle",
	"dinosaur water bottle", "pirate water bottle",
	"strawberry lunch box", "mini lights glass jars",
	"advent calendar gingham sack", "christmas gift bag small",
	"christmas wrapping paper", "christmas baubles red",
	"christmas baubles silver", "set of 3 cake tins pink",
	"recipe box retrospot", "oven glove spotty",
	"tea cosy retrospot", "doormat red retrospot",
	"notebook set of 3", "red retrospot pencils",
	"pencil sharpener retrospot", "scissors retrospot",
	"weekender bag red retrospot", "shopper bag pink polkadot",
	"tote bag red retrospot", "mini shoulder bag pink",
}

// Popularity tiers: a small share of the catalog accounts for most of
// the purchases, mirroring the skew of real retail data.
var (
	veryCommonItems = catalog[:15]
	commonItems     = catalog[15:30]
	uncommonItems   = catalog[30:]
)

/*
Config controls generation. Transactions is the number of
transactions to generate. AvgItems and StdDev parametrize the normal
distribution transaction sizes are drawn from; sizes are clamped to at
least 1 item. The same Seed always yields the same dataset.
*/
type Config struct {
	Transactions int
	AvgItems     float64
	StdDev       float64
	Seed         uint64
}

// DefaultConfig returns a Config that generates 5000 transactions of
// 10±5 items.
func DefaultConfig() Config {
	return Config{
		Transactions: 5000,
		AvgItems:     10,
		StdDev:       5,
		Seed:         42,
	}
}

/*
Generate takes a Config and returns the generated transactions or an
error if the configuration is invalid. Items within one transaction
are distinct: half of the picks come from the very common tier, three
in ten from the common tier and the rest from the uncommon tier, with
duplicate picks skipped.
*/
func Generate(cfg Config) ([]basket.Transaction, error) {
	if cfg.Transactions < 0 {
		return nil, fmt.Errorf("generating transactions: transaction count must not be negative, got %d", cfg.Transactions)
	}
	if cfg.AvgItems <= 0 {
		return nil, fmt.Errorf("generating transactions: average items per transaction must be positive, got %v", cfg.AvgItems)
	}
	if cfg.StdDev < 0 {
		return nil, fmt.Errorf("generating transactions: item count deviation must not be negative, got %v", cfg.StdDev)
	}
	rnd := rand.New(rand.NewSource(cfg.Seed))
	sizes := distuv.Normal{Mu: cfg.AvgItems, Sigma: cfg.StdDev, Src: rnd}
	transactions := make([]basket.Transaction, 0, cfg.Transactions)
	for i := 0; i < cfg.Transactions; i++ {
		transactions = append(transactions, generateTransaction(rnd, sizes))
	}
	return transactions, nil
}

func generateTransaction(rnd *rand.Rand, sizes distuv.Normal) basket.Transaction {
	size := int(sizes.Rand())
	if size < 1 {
		size = 1
	}
	transaction := make(basket.Transaction, 0, size)
	seen := make(map[string]bool, size)
	for i := 0; i < size; i++ {
		var item string
		switch pick := rnd.Float64(); {
		case pick < 0.5:
			item = veryCommonItems[rnd.Intn(len(veryCommonItems))]
		case pick < 0.8:
			item = commonItems[rnd.Intn(len(commonItems))]
		default:
			item = uncommonItems[rnd.Intn(len(uncommonItems))]
		}
		if !seen[item] {
			seen[item] = true
			transaction = append(transaction, item)
		}
	}
	return transaction
}

// CatalogSize returns the number of distinct items Generate can pick
// from.
func CatalogSize() int {
	return len(catalog)
}
