package testutil

import (
	"wasup-chucks/internal/domain/menus"
)

// Item returns a dish with the given name and optional allergen codes.
func Item(name string, allergens ...string) menus.Item {
	item := menus.Item{Name: name}
	for _, alt := range allergens {
		item.Allergens = append(item.Allergens, menus.Allergen{Alt: alt})
	}
	return item
}

// Venue returns a venue menu for slot with the named dishes.
func Venue(venue, slot string, names ...string) menus.VenueMenu {
	v := menus.VenueMenu{Venue: venue, Slot: slot, Items: []menus.Item{}}
	for _, n := range names {
		v.Items = append(v.Items, Item(n))
	}
	return v
}

// SampleMenu returns a one-day menu with Home Cooking at every meal plus an anytime deli.
func SampleMenu(date string) menus.Response {
	return menus.Response{
		date: {
			Venue("Home Cooking", "breakfast", "Scrambled Eggs", "Bacon"),
			Venue("Home Cooking", "lunch", "Chicken Tenders", "Mac and Cheese"),
			Venue("Home Cooking", "dinner", "Pot Roast", "Mashed Potatoes"),
			Venue("Deli", "anytime", "Turkey Sandwich"),
		},
	}
}
