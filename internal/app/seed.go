package app

// seedNames is a static id-to-name fallback used when the dataset cannot be
// read at startup. It also supplies display names for products whose reviews
// never carry a usable summary line.
var seedNames = map[string]string{
	"B00007GDFV": "phone case",
	"B00062NHH0": "shirt",
	"B00066G516": "socks",
	"B0006HB4XE": "chain armament",
	"B0007MV6PO": "hat",
	"B0007MV6Q8": "cap",
	"B0007MV6PY": "red hat",
	"B00080L00Q": "kit",
}
