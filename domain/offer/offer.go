// Package offer holds the normalized shape of third-party shopping results
// and the helpers that turn heterogeneous provider payloads into it.
package offer

// Offer is a single priced listing returned by a shopping-search provider,
// reduced to a fixed shape. Offers are ephemeral: they are built per search
// call and never persisted.
type Offer struct {
	Title  string         `json:"title"`
	URL    string         `json:"url"`
	Seller string         `json:"seller"`
	Price  *float64       `json:"price"`
	Raw    map[string]any `json:"raw"`
}
