package diningdata

import "wasup-chucks/internal/domain/menus"

func mapMenu(payload menuPayload) menus.Response {
	resp := make(menus.Response, len(payload))
	for date, venues := range payload {
		mapped := make([]menus.VenueMenu, 0, len(venues))
		for _, v := range venues {
			mapped = append(mapped, mapVenue(v))
		}
		resp[date] = mapped
	}
	return resp
}

func mapVenue(v venuePayload) menus.VenueMenu {
	items := make([]menus.Item, 0, len(v.Items))
	for _, it := range v.Items {
		items = append(items, mapItem(it))
	}
	return menus.VenueMenu{
		Venue: v.Venue,
		Meal:  v.Meal,
		Slot:  v.Slot,
		Items: items,
	}
}

func mapItem(it itemPayload) menus.Item {
	allergens := make([]menus.Allergen, 0, len(it.Allergens))
	for _, a := range it.Allergens {
		allergens = append(allergens, menus.Allergen{URL: a.URL, Alt: a.Alt})
	}
	return menus.Item{Name: it.Name, Allergens: allergens}
}
