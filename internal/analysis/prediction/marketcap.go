package prediction

import "github.com/Alias1177/cryptosignal/models"

// marketCapRanks is a static snapshot of approximate market-cap ranks by base asset
var marketCapRanks = map[string]int{
	"BTC":    1,
	"ETH":    2,
	"BNB":    4,
	"SOL":    5,
	"XRP":    6,
	"DOGE":   8,
	"ADA":    9,
	"TRX":    10,
	"AVAX":   12,
	"LINK":   13,
	"TON":    15,
	"DOT":    16,
	"MATIC":  18,
	"LTC":    20,
	"BCH":    21,
	"SHIB":   22,
	"UNI":    24,
	"NEAR":   26,
	"APT":    30,
	"ATOM":   34,
	"FIL":    38,
	"ARB":    42,
	"OP":     45,
	"INJ":    48,
	"SUI":    50,
	"PEPE":   55,
	"SEI":    62,
	"TIA":    66,
	"RNDR":   70,
	"FET":    74,
	"GALA":   85,
	"WIF":    90,
	"SAND":   95,
	"BONK":   105,
	"FLOKI":  110,
	"JASMY":  120,
	"CHZ":    130,
	"ROSE":   150,
	"1INCH":  170,
	"CELR":   220,
	"MAGIC":  260,
	"BLZ":    320,
	"PEOPLE": 140,
}

// MarketCapRank returns the approximate rank of a symbol, 0 when unknown
func MarketCapRank(symbol string) int {
	return marketCapRanks[models.BaseAsset(symbol)]
}
