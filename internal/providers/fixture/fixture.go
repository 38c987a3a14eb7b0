package fixture

import (
	"context"
	"time"

	"wasup-chucks/internal/domain/meals"
	"wasup-chucks/internal/domain/menus"
	"wasup-chucks/internal/timeutil"
)

const (
	defaultDays = 5
	iconBase    = "https://diningdata.cedarville.edu/images/"
)

// Provider returns a deterministic menu useful for local runs without the dining API.
type Provider struct {
	now  func() time.Time
	days int
}

// New creates a fixture provider covering the given number of days starting today.
func New(days int) *Provider {
	if days <= 0 {
		days = defaultDays
	}
	return &Provider{now: time.Now, days: days}
}

// FetchMenu returns the same rotation of dishes for each day, keyed from today in venue time.
func (p *Provider) FetchMenu(ctx context.Context) (menus.Response, error) {
	_ = ctx

	today := timeutil.StartOfDay(p.now().In(timeutil.VenueLocation()))
	resp := make(menus.Response, p.days)
	for i := 0; i < p.days; i++ {
		day := today.AddDate(0, 0, i)
		resp[timeutil.DateKey(day)] = dayMenu(i)
	}
	return resp, nil
}

func dayMenu(offset int) []menus.VenueMenu {
	rotation := []string{"Pot Roast", "Chicken Alfredo", "Turkey Dinner", "Pulled Pork", "Meatloaf"}
	main := rotation[offset%len(rotation)]

	return []menus.VenueMenu{
		venue("Home Cooking", meals.Breakfast, item("Scrambled Eggs", menus.AllergenEgg), item("Biscuits and Gravy", menus.AllergenGluten, menus.AllergenDairy)),
		venue("Home Cooking", meals.Lunch, item(main, menus.AllergenDairy), item("Mashed Potatoes", menus.AllergenDairy), item("Green Beans", menus.AllergenVegetarian)),
		venue("Home Cooking", meals.Dinner, item("Baked Ziti", menus.AllergenGluten, menus.AllergenDairy), item("Garden Salad", menus.AllergenVegetarian, menus.AllergenGlutenFree)),
		venue("Grill", meals.Lunch, item("Cheeseburger", menus.AllergenGluten, menus.AllergenDairy), item("French Fries", menus.AllergenVegetarian)),
		anytime("Deli", item("Turkey Club", menus.AllergenGluten)),
		anytime("Salad Bar", item("Spinach", menus.AllergenVegetarian, menus.AllergenGlutenFree)),
	}
}

func venue(name string, phase meals.Phase, items ...menus.Item) menus.VenueMenu {
	label := phase.DisplayName()
	return menus.VenueMenu{Venue: name, Meal: &label, Slot: phase.APISlot(), Items: items}
}

func anytime(name string, items ...menus.Item) menus.VenueMenu {
	return menus.VenueMenu{Venue: name, Slot: meals.SlotAnytime, Items: items}
}

func item(name string, alts ...string) menus.Item {
	allergens := make([]menus.Allergen, 0, len(alts))
	for _, alt := range alts {
		allergens = append(allergens, menus.Allergen{URL: iconBase + alt + ".png", Alt: alt})
	}
	return menus.Item{Name: name, Allergens: allergens}
}
