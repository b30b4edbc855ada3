package foodref

// defaultFoods is the built-in reference set, grouped by category.
// Values follow standard food-composition reference tables.
var defaultFoods = []FoodItem{
	// Staples and whole grains
	{Name: "steamed rice", Calories: 116, Protein: 2.6, Fat: 0.3, Carbs: 25.9},
	{Name: "wheat bun", Calories: 223, Protein: 7.0, Fat: 1.1, Carbs: 47.0},
	{Name: "boiled noodles", Calories: 110, Protein: 4.0, Fat: 0.5, Carbs: 23.0},
	{Name: "brown rice", Calories: 348, Protein: 7.2, Fat: 2.5, Carbs: 74.0},
	{Name: "rolled oats", Calories: 377, Protein: 15.0, Fat: 6.7, Carbs: 61.6},
	{Name: "millet", Calories: 361, Protein: 9.0, Fat: 3.1, Carbs: 75.1},
	{Name: "buckwheat noodles", Calories: 340, Protein: 11.0, Fat: 2.0, Carbs: 70.0},
	{Name: "quinoa", Calories: 368, Protein: 14.1, Fat: 6.1, Carbs: 64.2},
	{Name: "fresh corn", Calories: 112, Protein: 4.0, Fat: 1.2, Carbs: 22.8},
	{Name: "sweet potato", Calories: 86, Protein: 1.6, Fat: 0.2, Carbs: 20.1},
	{Name: "purple yam", Calories: 106, Protein: 1.5, Fat: 0.2, Carbs: 25.0},
	{Name: "chinese yam", Calories: 57, Protein: 1.9, Fat: 0.2, Carbs: 12.4},
	{Name: "taro", Calories: 81, Protein: 2.2, Fat: 0.2, Carbs: 18.1},
	{Name: "potato", Calories: 77, Protein: 2.0, Fat: 0.2, Carbs: 17.2},

	// Legumes
	{Name: "soybeans", Calories: 390, Protein: 35.0, Fat: 16.0, Carbs: 34.0},
	{Name: "black beans", Calories: 381, Protein: 36.0, Fat: 15.9, Carbs: 33.3},
	{Name: "adzuki beans", Calories: 324, Protein: 20.2, Fat: 0.6, Carbs: 63.4},
	{Name: "mung beans", Calories: 329, Protein: 21.6, Fat: 0.8, Carbs: 62.0},
	{Name: "chickpeas", Calories: 364, Protein: 19.0, Fat: 6.0, Carbs: 61.0},
	{Name: "lentils", Calories: 353, Protein: 25.8, Fat: 1.1, Carbs: 60.1},
	{Name: "kidney beans", Calories: 333, Protein: 24.0, Fat: 0.8, Carbs: 60.0},
	{Name: "firm tofu", Calories: 98, Protein: 12.2, Fat: 4.8, Carbs: 1.5},
	{Name: "silken tofu", Calories: 57, Protein: 6.2, Fat: 2.5, Carbs: 2.4},
	{Name: "dried tofu", Calories: 140, Protein: 15.0, Fat: 6.0, Carbs: 5.0},
	{Name: "natto", Calories: 212, Protein: 18.0, Fat: 11.0, Carbs: 14.0},

	// Vegetables
	{Name: "broccoli", Calories: 34, Protein: 2.8, Fat: 0.4, Carbs: 6.6},
	{Name: "cauliflower", Calories: 25, Protein: 2.1, Fat: 0.2, Carbs: 4.6},
	{Name: "cabbage", Calories: 24, Protein: 1.5, Fat: 0.2, Carbs: 3.6},
	{Name: "kale", Calories: 49, Protein: 4.3, Fat: 0.9, Carbs: 8.8},
	{Name: "red cabbage", Calories: 25, Protein: 1.4, Fat: 0.2, Carbs: 5.3},
	{Name: "daikon radish", Calories: 21, Protein: 0.9, Fat: 0.1, Carbs: 5.0},
	{Name: "spinach", Calories: 23, Protein: 2.9, Fat: 0.4, Carbs: 3.6},
	{Name: "romaine lettuce", Calories: 15, Protein: 1.4, Fat: 0.4, Carbs: 2.1},
	{Name: "water spinach", Calories: 20, Protein: 2.2, Fat: 0.3, Carbs: 3.6},
	{Name: "bok choy", Calories: 15, Protein: 1.5, Fat: 0.3, Carbs: 2.7},
	{Name: "asparagus", Calories: 19, Protein: 2.6, Fat: 0.2, Carbs: 3.3},
	{Name: "celery", Calories: 14, Protein: 0.8, Fat: 0.1, Carbs: 3.1},
	{Name: "cucumber", Calories: 16, Protein: 0.8, Fat: 0.2, Carbs: 2.9},
	{Name: "tomato", Calories: 20, Protein: 0.9, Fat: 0.2, Carbs: 4.0},
	{Name: "bell pepper", Calories: 26, Protein: 1.0, Fat: 0.2, Carbs: 5.8},
	{Name: "carrot", Calories: 39, Protein: 1.0, Fat: 0.2, Carbs: 8.8},
	{Name: "pumpkin", Calories: 23, Protein: 0.7, Fat: 0.1, Carbs: 5.3},
	{Name: "winter melon", Calories: 12, Protein: 0.4, Fat: 0.2, Carbs: 2.6},
	{Name: "shiitake mushroom", Calories: 26, Protein: 2.2, Fat: 0.3, Carbs: 5.2},
	{Name: "white mushroom", Calories: 24, Protein: 2.7, Fat: 0.1, Carbs: 4.1},
	{Name: "seaweed", Calories: 77, Protein: 8.3, Fat: 0.5, Carbs: 12.1},

	// Eggs and dairy
	{Name: "boiled egg", Calories: 144, Protein: 13.3, Fat: 8.8, Carbs: 2.8},
	{Name: "egg white", Calories: 60, Protein: 11.6, Fat: 0.1, Carbs: 3.1},
	{Name: "whole milk", Calories: 54, Protein: 3.0, Fat: 3.2, Carbs: 3.4},
	{Name: "skim milk", Calories: 33, Protein: 3.4, Fat: 0.1, Carbs: 5.0},
	{Name: "plain yogurt", Calories: 72, Protein: 2.5, Fat: 2.7, Carbs: 9.3},
	{Name: "greek yogurt", Calories: 59, Protein: 10.0, Fat: 0.4, Carbs: 3.6},
	{Name: "cheese", Calories: 328, Protein: 25.7, Fat: 23.5, Carbs: 3.5},

	// Meat and poultry
	{Name: "chicken breast", Calories: 133, Protein: 19.4, Fat: 5.0, Carbs: 2.5},
	{Name: "chicken thigh", Calories: 181, Protein: 16.0, Fat: 13.0, Carbs: 0.0},
	{Name: "lean beef", Calories: 106, Protein: 20.2, Fat: 2.3, Carbs: 1.2},
	{Name: "beef tenderloin", Calories: 107, Protein: 22.2, Fat: 0.9, Carbs: 2.4},
	{Name: "lean pork", Calories: 143, Protein: 20.3, Fat: 6.2, Carbs: 1.5},
	{Name: "pork tenderloin", Calories: 155, Protein: 20.2, Fat: 7.9, Carbs: 0.7},
	{Name: "lamb leg", Calories: 118, Protein: 20.1, Fat: 3.9, Carbs: 0.0},
	{Name: "duck breast", Calories: 123, Protein: 19.7, Fat: 4.3, Carbs: 0.1},

	// Fish and seafood
	{Name: "salmon", Calories: 139, Protein: 17.2, Fat: 7.8, Carbs: 0.0},
	{Name: "cod", Calories: 88, Protein: 20.4, Fat: 0.5, Carbs: 0.5},
	{Name: "sea bass", Calories: 105, Protein: 18.6, Fat: 3.4, Carbs: 0.0},
	{Name: "tuna", Calories: 106, Protein: 24.0, Fat: 0.9, Carbs: 0.0},
	{Name: "tilapia", Calories: 98, Protein: 18.4, Fat: 1.5, Carbs: 2.8},
	{Name: "shrimp", Calories: 93, Protein: 18.6, Fat: 0.8, Carbs: 2.8},
	{Name: "squid", Calories: 75, Protein: 15.6, Fat: 1.0, Carbs: 0.0},
	{Name: "clams", Calories: 62, Protein: 10.0, Fat: 1.0, Carbs: 3.0},
	{Name: "oyster", Calories: 73, Protein: 9.0, Fat: 2.0, Carbs: 4.0},

	// Fruit
	{Name: "blueberries", Calories: 57, Protein: 0.7, Fat: 0.3, Carbs: 14.5},
	{Name: "strawberries", Calories: 32, Protein: 1.0, Fat: 0.2, Carbs: 7.1},
	{Name: "raspberries", Calories: 52, Protein: 1.2, Fat: 0.6, Carbs: 11.9},
	{Name: "mulberries", Calories: 49, Protein: 1.7, Fat: 0.4, Carbs: 12.9},
	{Name: "apple", Calories: 52, Protein: 0.3, Fat: 0.2, Carbs: 13.8},
	{Name: "pear", Calories: 51, Protein: 0.4, Fat: 0.2, Carbs: 13.5},
	{Name: "mandarin orange", Calories: 44, Protein: 0.9, Fat: 0.1, Carbs: 10.2},
	{Name: "grapes", Calories: 45, Protein: 0.5, Fat: 0.2, Carbs: 10.3},
	{Name: "fresh dates", Calories: 125, Protein: 3.2, Fat: 0.3, Carbs: 30.5},
	{Name: "kiwifruit", Calories: 61, Protein: 1.1, Fat: 0.5, Carbs: 14.7},
	{Name: "banana", Calories: 89, Protein: 1.1, Fat: 0.3, Carbs: 22.8},
	{Name: "grapefruit", Calories: 33, Protein: 0.7, Fat: 0.2, Carbs: 8.4},
	{Name: "avocado", Calories: 160, Protein: 2.0, Fat: 14.7, Carbs: 8.5},

	// Oils, nuts and seeds
	{Name: "olive oil", Calories: 884, Protein: 0.0, Fat: 100.0, Carbs: 0.0},
	{Name: "flaxseed oil", Calories: 898, Protein: 0.0, Fat: 99.8, Carbs: 0.0},
	{Name: "canola oil", Calories: 899, Protein: 0.0, Fat: 99.9, Carbs: 0.0},
	{Name: "walnuts", Calories: 654, Protein: 15.0, Fat: 65.0, Carbs: 13.7},
	{Name: "almonds", Calories: 579, Protein: 21.0, Fat: 50.0, Carbs: 21.0},
	{Name: "chia seeds", Calories: 486, Protein: 16.5, Fat: 30.7, Carbs: 42.1},
	{Name: "flaxseeds", Calories: 534, Protein: 18.0, Fat: 42.0, Carbs: 29.0},
	{Name: "pumpkin seeds", Calories: 574, Protein: 29.0, Fat: 49.0, Carbs: 15.0},
}
