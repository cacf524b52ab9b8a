package catalog

import "codecup/internal/models"

const CategoryHotCoffee = "Hot Coffee"

var defaultProducts = []models.Product{
	{
		ID:          "americano",
		Name:        "Americano",
		UnitPrice:   3.00,
		Description: "Rich and bold espresso with hot water",
		Category:    CategoryHotCoffee,
		Rating:      4.5,
		IsPopular:   true,
		Ingredients: models.StringList{"espresso", "hot water"},
	},
	{
		ID:          "cappuccino",
		Name:        "Cappuccino",
		UnitPrice:   3.50,
		Description: "Espresso with steamed milk and foam",
		Category:    CategoryHotCoffee,
		Rating:      4.7,
		IsPopular:   true,
		Ingredients: models.StringList{"espresso", "steamed milk", "milk foam"},
	},
	{
		ID:          "mocha",
		Name:        "Mocha",
		UnitPrice:   4.00,
		Description: "Chocolate and espresso perfect blend",
		Category:    CategoryHotCoffee,
		Rating:      4.6,
		Ingredients: models.StringList{"espresso", "chocolate", "steamed milk"},
	},
	{
		ID:          "flat_white",
		Name:        "Flat White",
		UnitPrice:   3.75,
		Description: "Smooth espresso with microfoam milk",
		Category:    CategoryHotCoffee,
		Rating:      4.4,
		Ingredients: models.StringList{"espresso", "microfoam"},
	},
}

var defaultRewards = []models.RewardItem{
	{ID: "1", ProductID: "americano", CoffeeName: "Americano", PointsRequired: 30, ValidUntil: "Valid until 04.07.23"},
	{ID: "2", ProductID: "cappuccino", CoffeeName: "Cappuccino", PointsRequired: 35, ValidUntil: "Valid until 04.07.23"},
	{ID: "3", ProductID: "mocha", CoffeeName: "Mocha", PointsRequired: 40, ValidUntil: "Valid until 04.07.23"},
	{ID: "4", ProductID: "flat_white", CoffeeName: "Flat White", PointsRequired: 35, ValidUntil: "Valid until 04.07.23"},
}
