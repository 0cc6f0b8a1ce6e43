// Package markets holds the static registry of tradable perp instruments.
// Short markets are economically distinct instruments from their long
// counterpart and resolve to their own entry.
package markets

// Info describes one instrument: display name, the divisor converting a
// native integer amount into unit counts, the price exponent, and whether
// the instrument is the short leg of its base market.
type Info struct {
	Name          string
	Denomination  int64
	Exponent      int32
	IsShortMarket bool
	BaseMarket    string
}

// DisplayName is the grouping key for per-market breakdowns; the short leg
// gets a distinct suffix so it never mixes with the long leg.
func (i Info) DisplayName() string {
	if i.IsShortMarket {
		return i.Name + "-SHORT"
	}
	return i.Name
}

var registry = map[string]Info{
	"So11111111111111111111111111111111111111112": {
		Name:         "SOL",
		Denomination: 1_000_000_000,
		Exponent:     -8,
	},
	"3x3FqLWmNYjejGDao5j3EJvqwbTqsHVLBXnGnL9A1BYD": {
		Name:          "SOL",
		Denomination:  1_000_000_000,
		Exponent:      -8,
		IsShortMarket: true,
		BaseMarket:    "So11111111111111111111111111111111111111112",
	},
	"3NZ9JMVBmGAqocybic2c7LQCJScmgsAZ6vQqTDzcqmJh": {
		Name:         "BTC",
		Denomination: 100_000_000,
		Exponent:     -8,
	},
	"FBnDBkcZogEVx2yqHPVvNsEEVVTHEsxQLGcyvMMbVwsf": {
		Name:          "BTC",
		Denomination:  100_000_000,
		Exponent:      -8,
		IsShortMarket: true,
		BaseMarket:    "3NZ9JMVBmGAqocybic2c7LQCJScmgsAZ6vQqTDzcqmJh",
	},
	"7vfCXTUXx5WJV5JADk17DUJ4ksgau7utNKj4b963voxs": {
		Name:         "ETH",
		Denomination: 100_000_000,
		Exponent:     -8,
	},
	"Hr9pzexrBge3vgmBNRR8u42KNQCZrF4VW9JdGDeSpGti": {
		Name:          "ETH",
		Denomination:  100_000_000,
		Exponent:      -8,
		IsShortMarket: true,
		BaseMarket:    "7vfCXTUXx5WJV5JADk17DUJ4ksgau7utNKj4b963voxs",
	},
	"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v": {
		Name:         "USDC",
		Denomination: 1_000_000,
		Exponent:     -8,
	},
	"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB": {
		Name:         "USDT",
		Denomination: 1_000_000,
		Exponent:     -8,
	},
}

// Resolve looks up an instrument by its on-chain identifier. The second
// return is false for identifiers missing from the registry; callers decide
// whether to skip or keep such events (see internal/analytics).
func Resolve(id string) (Info, bool) {
	info, ok := registry[id]
	return info, ok
}
