package constants

// TaxKind is one of the Canadian sales-tax lines a receipt can carry.
// The canonical value is the French label, which is also what the flat
// serialization format emits.
type TaxKind string

const (
	TaxGST TaxKind = "TPS" // federal GST
	TaxQST TaxKind = "TVQ" // Québec sales tax
	TaxPST TaxKind = "TVP" // provincial sales tax
	TaxHST TaxKind = "TVH" // harmonized sales tax
)

// AllTaxKinds lists every kind in serialization order.
var AllTaxKinds = []TaxKind{TaxGST, TaxQST, TaxPST, TaxHST}

// TaxSynonyms maps each kind to the lowercase labels receipts print for it.
// French and English labels are synonyms for the same canonical kind.
var TaxSynonyms = map[TaxKind][]string{
	TaxGST: {"tps", "gst"},
	TaxQST: {"tvq", "qst"},
	TaxPST: {"tvp", "pst"},
	TaxHST: {"tvh", "hst"},
}
