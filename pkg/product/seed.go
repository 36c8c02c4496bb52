package product

const placeholderImage = "/placeholder.svg?height=300&width=300"

var defaultProducts = []Product{
	{
		Name:        "Wireless Headphones",
		Price:       99.99,
		Rating:      4.5,
		Reviews:     128,
		Category:    "Electronics",
		InStock:     true,
		Description: "Premium wireless headphones with active noise cancellation and 30-hour battery life. Experience crystal-clear audio quality with deep bass and crisp highs.",
	},
	{
		Name:        "Smart Watch",
		Price:       199.99,
		Rating:      4.8,
		Reviews:     89,
		Category:    "Electronics",
		InStock:     true,
		Description: "Advanced fitness tracking with heart rate monitoring, GPS, and smartphone notifications. Water-resistant design perfect for all activities.",
	},
	{
		Name:        "Coffee Maker",
		Price:       79.99,
		Rating:      4.3,
		Reviews:     156,
		Category:    "Home",
		InStock:     true,
		Description: "Programmable drip coffee maker with thermal carafe. Brew up to 12 cups of delicious coffee with customizable strength settings.",
	},
	{
		Name:        "Yoga Mat",
		Price:       29.99,
		Rating:      4.6,
		Reviews:     203,
		Category:    "Fitness",
		InStock:     true,
		Description: "Non-slip premium yoga mat with excellent cushioning and durability. Includes carrying strap and alignment guides.",
	},
	{
		Name:        "Bluetooth Speaker",
		Price:       49.99,
		Rating:      4.4,
		Reviews:     94,
		Category:    "Electronics",
		InStock:     false,
		Description: "Portable waterproof speaker with 12-hour battery life and 360-degree sound. Perfect for outdoor adventures and home entertainment.",
	},
	{
		Name:        "Running Shoes",
		Price:       89.99,
		Rating:      4.7,
		Reviews:     167,
		Category:    "Fashion",
		InStock:     true,
		Description: "Lightweight running shoes with advanced cushioning technology and breathable mesh upper. Designed for comfort and performance.",
	},
	{
		Name:        "Desk Lamp",
		Price:       34.99,
		Rating:      4.2,
		Reviews:     78,
		Category:    "Home",
		InStock:     true,
		Description: "LED desk lamp with adjustable brightness and color temperature. USB charging port and touch controls for modern workspace.",
	},
	{
		Name:        "Backpack",
		Price:       59.99,
		Rating:      4.5,
		Reviews:     134,
		Category:    "Fashion",
		InStock:     true,
		Description: "Durable laptop backpack with multiple compartments and padded straps. Water-resistant material with anti-theft zipper design.",
	},
	{
		Name:        "Air Purifier",
		Price:       149.99,
		Rating:      4.6,
		Reviews:     201,
		Category:    "Home",
		InStock:     true,
		Description: "HEPA air purifier removes 99.97% of allergens and pollutants. Quiet operation with smart sensor and app control.",
	},
	{
		Name:        "Protein Powder",
		Price:       39.99,
		Rating:      4.4,
		Reviews:     312,
		Category:    "Fitness",
		InStock:     true,
		Description: "Premium whey protein powder with 25g protein per serving. Available in multiple flavors with no artificial additives.",
	},
	{
		Name:        "Gaming Mouse",
		Price:       69.99,
		Rating:      4.7,
		Reviews:     156,
		Category:    "Electronics",
		InStock:     true,
		Description: "High-precision gaming mouse with customizable RGB lighting and programmable buttons. Ergonomic design for extended gaming sessions.",
	},
	{
		Name:        "Skincare Set",
		Price:       79.99,
		Rating:      4.3,
		Reviews:     89,
		Category:    "Beauty",
		InStock:     true,
		Description: "Complete skincare routine with cleanser, toner, and moisturizer. Natural ingredients suitable for all skin types.",
	},
}
