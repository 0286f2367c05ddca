package garden

import "github.com/greenthumb/greenthumb/internal/model/entities"

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + "?w=400&h=400&fit=crop"
}

// SampleState returns the demo data: three gardens and fifteen plants.
func SampleState() State {
	gardens := []entities.Garden{
		{ID: 1, Name: "Indoor Garden"},
		{ID: 2, Name: "Greenhouse"},
		{ID: 3, Name: "Outdoor Garden"},
	}
	plants := map[int][]entities.Plant{
		1: {
			{ID: 1, Name: "Monstera Deliciosa", Type: "Tropical", Temperature: 72, Humidity: 65, Light: "Bright Indirect", WaterLevel: "Good", LastWateredLabel: "2 days ago", Health: entities.HealthExcellent, ImageURL: unsplash("photo-1614594975525-e45190c55d0b")},
			{ID: 2, Name: "Snake Plant", Type: "Succulent", Temperature: 70, Humidity: 45, Light: "Low", WaterLevel: "Good", LastWateredLabel: "5 days ago", Health: entities.HealthGood, ImageURL: unsplash("photo-1593482892290-81f08cb4f7ca")},
			{ID: 3, Name: "Pothos", Type: "Vine", Temperature: 73, Humidity: 60, Light: "Medium", WaterLevel: "Needs Water", LastWateredLabel: "4 days ago", Health: entities.HealthGood, ImageURL: unsplash("photo-1572688484438-313a6e50c333")},
			{ID: 4, Name: "Peace Lily", Type: "Tropical", Temperature: 71, Humidity: 70, Light: "Medium", WaterLevel: "Good", LastWateredLabel: "1 day ago", Health: entities.HealthExcellent, ImageURL: unsplash("photo-1593691509543-c55fb32d8de5")},
			{ID: 5, Name: "Spider Plant", Type: "Tropical", Temperature: 69, Humidity: 55, Light: "Bright Indirect", WaterLevel: "Good", LastWateredLabel: "3 days ago", Health: entities.HealthGood, ImageURL: unsplash("photo-1572688484438-313a6e50c333")},
			{ID: 6, Name: "Aloe Vera", Type: "Succulent", Temperature: 75, Humidity: 40, Light: "Bright Direct", WaterLevel: "Good", LastWateredLabel: "7 days ago", Health: entities.HealthGood, ImageURL: unsplash("photo-1509587584298-0f3b3a3a1797")},
			{ID: 7, Name: "Fiddle Leaf Fig", Type: "Tree", Temperature: 72, Humidity: 65, Light: "Bright Indirect", WaterLevel: "Good", LastWateredLabel: "2 days ago", Health: entities.HealthExcellent, ImageURL: unsplash("photo-1545241047-6083a3684587")},
			{ID: 8, Name: "Rubber Plant", Type: "Tree", Temperature: 74, Humidity: 62, Light: "Bright Indirect", WaterLevel: "Good", LastWateredLabel: "3 days ago", Health: entities.HealthExcellent, ImageURL: unsplash("photo-1614594737552-c2f9d1f5b90f")},
		},
		2: {
			{ID: 9, Name: "Tomato Plant #1", Type: "Vegetable", Temperature: 78, Humidity: 70, Light: "Full Sun", WaterLevel: "Good", LastWateredLabel: "1 day ago", Health: entities.HealthExcellent, ImageURL: unsplash("photo-1592841200221-a6898f307baa")},
			{ID: 10, Name: "Basil", Type: "Herb", Temperature: 76, Humidity: 65, Light: "Full Sun", WaterLevel: "Good", LastWateredLabel: "1 day ago", Health: entities.HealthGood, ImageURL: unsplash("photo-1618375569909-3c8616cf976e")},
			{ID: 11, Name: "Pepper Plant", Type: "Vegetable", Temperature: 79, Humidity: 68, Light: "Full Sun", WaterLevel: "Needs Water", LastWateredLabel: "2 days ago", Health: entities.HealthGood, ImageURL: unsplash("photo-1563565375-f3fdfdbefa83")},
			{ID: 12, Name: "Cucumber Vine", Type: "Vegetable", Temperature: 77, Humidity: 72, Light: "Full Sun", WaterLevel: "Good", LastWateredLabel: "1 day ago", Health: entities.HealthExcellent, ImageURL: unsplash("photo-1604003290853-4b15f2d924cd")},
		},
		3: {
			{ID: 13, Name: "Rose Bush", Type: "Flower", Temperature: 68, Humidity: 55, Light: "Full Sun", WaterLevel: "Good", LastWateredLabel: "1 day ago", Health: entities.HealthGood, ImageURL: unsplash("photo-1518709594023-6eab9bab7b23")},
			{ID: 14, Name: "Lavender", Type: "Herb", Temperature: 70, Humidity: 50, Light: "Full Sun", WaterLevel: "Good", LastWateredLabel: "3 days ago", Health: entities.HealthExcellent, ImageURL: unsplash("photo-1595959068281-ea63e8ac2f0e")},
			{ID: 15, Name: "Sunflower", Type: "Flower", Temperature: 72, Humidity: 52, Light: "Full Sun", WaterLevel: "Needs Water", LastWateredLabel: "2 days ago", Health: entities.HealthGood, ImageURL: unsplash("photo-1597848212624-e0b25eff7dad")},
		},
	}
	return NewState(gardens, plants)
}
