package diningdata

// menuPayload is the body of GET /menus: venue menus keyed by yyyy-MM-dd.
type menuPayload map[string][]venuePayload

type venuePayload struct {
	Venue string        `json:"venue"`
	Meal  *string       `json:"meal"`
	Slot  string        `json:"slot"`
	Items []itemPayload `json:"items"`
}

type itemPayload struct {
	Name      string            `json:"name"`
	Allergens []allergenPayload `json:"allergens"`
}

type allergenPayload struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}
