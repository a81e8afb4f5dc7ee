package offer

// Field resolution tables for the provider payloads we have seen in the
// wild. First present key wins; order matters.
var (
	titleKeys  = []string{"title", "product_title", "name"}
	urlKeys    = []string{"link", "product_link", "offer_link", "source"}
	sellerKeys = []string{"source", "merchant", "store"}
	priceKeys  = []string{"price", "extracted_price"}
)

// Normalize maps one raw provider record to an Offer. Missing fields resolve
// to their zero value; the raw record is kept verbatim for display and
// debugging. URLs are passed through unvalidated.
func Normalize(rec map[string]any) Offer {
	return Offer{
		Title:  firstString(rec, titleKeys...),
		URL:    firstString(rec, urlKeys...),
		Seller: firstString(rec, sellerKeys...),
		Price:  FirstPrice(rec, priceKeys...),
		Raw:    rec,
	}
}

// NormalizeAll maps a raw result collection through Normalize.
func NormalizeAll(recs []map[string]any) []Offer {
	offers := make([]Offer, 0, len(recs))
	for _, rec := range recs {
		offers = append(offers, Normalize(rec))
	}
	return offers
}

// Lowest folds a slice of offers into the minimum non-nil price. It returns
// nil for an empty slice or when every offer is unpriced.
func Lowest(offers []Offer) *float64 {
	var min *float64
	for _, o := range offers {
		if o.Price == nil {
			continue
		}
		if min == nil || *o.Price < *min {
			p := *o.Price
			min = &p
		}
	}
	return min
}

func firstString(rec map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := rec[k]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
