package fallback

import "github.com/shandysiswandi/fraudboard/internal/dashboard/entity"

var cities = []entity.City{
	{Name: "Bhopal", District: "Bhopal", Lat: 23.2599, Lng: 77.4126, Population: 2.4, EconomicActivity: 0.9, Urbanization: 0.85},
	{Name: "Indore", District: "Indore", Lat: 22.7196, Lng: 75.8577, Population: 3.2, EconomicActivity: 0.95, Urbanization: 0.9},
	{Name: "Jabalpur", District: "Jabalpur", Lat: 23.1815, Lng: 79.9864, Population: 1.3, EconomicActivity: 0.7, Urbanization: 0.75},
	{Name: "Gwalior", District: "Gwalior", Lat: 26.2183, Lng: 78.1828, Population: 1.2, EconomicActivity: 0.65, Urbanization: 0.7},
	{Name: "Ujjain", District: "Ujjain", Lat: 23.1765, Lng: 75.7885, Population: 0.7, EconomicActivity: 0.6, Urbanization: 0.65},
	{Name: "Sagar", District: "Sagar", Lat: 23.8388, Lng: 78.7378, Population: 0.4, EconomicActivity: 0.45, Urbanization: 0.5},
	{Name: "Dewas", District: "Dewas", Lat: 22.9676, Lng: 76.0534, Population: 0.3, EconomicActivity: 0.5, Urbanization: 0.55},
	{Name: "Satna", District: "Satna", Lat: 24.5670, Lng: 80.8320, Population: 0.35, EconomicActivity: 0.4, Urbanization: 0.45},
	{Name: "Ratlam", District: "Ratlam", Lat: 23.3315, Lng: 75.0367, Population: 0.28, EconomicActivity: 0.45, Urbanization: 0.5},
	{Name: "Rewa", District: "Rewa", Lat: 24.5364, Lng: 81.2964, Population: 0.25, EconomicActivity: 0.35, Urbanization: 0.4},
	{Name: "Murwara", District: "Katni", Lat: 23.1815, Lng: 79.9864, Population: 0.2, EconomicActivity: 0.4, Urbanization: 0.45},
	{Name: "Singrauli", District: "Singrauli", Lat: 24.1992, Lng: 82.6739, Population: 0.3, EconomicActivity: 0.6, Urbanization: 0.55},
	{Name: "Burhanpur", District: "Burhanpur", Lat: 21.3009, Lng: 76.2291, Population: 0.2, EconomicActivity: 0.3, Urbanization: 0.35},
	{Name: "Khandwa", District: "Khandwa", Lat: 21.8343, Lng: 76.3569, Population: 0.2, EconomicActivity: 0.35, Urbanization: 0.4},
	{Name: "Bhind", District: "Bhind", Lat: 26.5653, Lng: 78.7875, Population: 0.18, EconomicActivity: 0.3, Urbanization: 0.35},
	{Name: "Chhindwara", District: "Chhindwara", Lat: 22.0572, Lng: 78.9315, Population: 0.15, EconomicActivity: 0.3, Urbanization: 0.35},
	{Name: "Guna", District: "Guna", Lat: 24.6537, Lng: 77.3112, Population: 0.18, EconomicActivity: 0.25, Urbanization: 0.3},
	{Name: "Shivpuri", District: "Shivpuri", Lat: 25.4244, Lng: 77.6581, Population: 0.2, EconomicActivity: 0.25, Urbanization: 0.3},
	{Name: "Vidisha", District: "Vidisha", Lat: 23.5251, Lng: 77.8081, Population: 0.16, EconomicActivity: 0.3, Urbanization: 0.35},
	{Name: "Chhatarpur", District: "Chhatarpur", Lat: 24.9178, Lng: 79.5941, Population: 0.13, EconomicActivity: 0.2, Urbanization: 0.25},
}

// Cities returns the fixed Madhya Pradesh heatmap locations in their canonical order.
func Cities() []entity.City {
	out := make([]entity.City, len(cities))
	copy(out, cities)
	return out
}
