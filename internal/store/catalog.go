package store

// Product is one storefront catalogue entry.
type Product struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Price       int      `json:"price"`
	Category    string   `json:"category"`
	InStock     bool     `json:"inStock"`
	Colors      []string `json:"colors"`
	Sizes       []string `json:"sizes"`
	Gender      string   `json:"gender"`
	AgeGroup    string   `json:"ageGroup"`
	Description string   `json:"description"`
	Specs       []string `json:"specs"`
	Image       string   `json:"image"`
}

var products = []Product{
	{
		ID: 1, Title: "Neon Cyber-Decks", Price: 299, Category: "Gadgets", InStock: true,
		Colors: []string{"Red", "Blue", "Black"}, Sizes: []string{"M", "L"},
		Gender: "Unisex", AgeGroup: "Adults",
		Description: "Holographic interface with mechanical feedback. Perfect for netrunners.",
		Specs:       []string{"Holographic Display", "Tactile Feedback", "5TB Storage", "Neural Link Ready"},
		Image:       "https://images.unsplash.com/photo-1550745165-9bc0b252726f?auto=format&fit=crop&q=80&w=1000",
	},
	{
		ID: 2, Title: "Quantum Processor", Price: 899, Category: "Hardware", InStock: true,
		Colors: []string{"Black", "White"}, Sizes: []string{"S"},
		Gender: "Unisex", AgeGroup: "Adults",
		Description: "Next-gen computing power for AI workloads. Capable of 1000 Qubits.",
		Specs:       []string{"1000 Qubits", "Zero Latency", "Supercooled", "AI Optimized"},
		Image:       "https://images.unsplash.com/photo-1591799264318-7e6ef8ddb7ea?auto=format&fit=crop&q=80&w=1000",
	},
	{
		ID: 3, Title: "Neural Interface", Price: 599, Category: "Cybernetics", InStock: false,
		Colors: []string{"White"}, Sizes: []string{"S", "M", "L", "XL"},
		Gender: "Unisex", AgeGroup: "Adults",
		Description: "Direct brain-computer connection kit. Experience the web with your mind.",
		Specs:       []string{"Wireless", "Low Latency", "Biometric Security", "FDA Approved"},
		Image:       "https://images.unsplash.com/photo-1518770660439-4636190af475?auto=format&fit=crop&q=80&w=1000",
	},
	{
		ID: 4, Title: "Bot Assistant", Price: 1200, Category: "Gadgets", InStock: true,
		Colors: []string{"White", "Blue"}, Sizes: []string{"M"},
		Gender: "Unisex", AgeGroup: "Kids",
		Description: "Autonomous helper droid for daily tasks. Runs on fusion cells.",
		Specs:       []string{"Autonomous", "Voice Control", "Fusion Power", "Multi-terrain"},
		Image:       "https://images.unsplash.com/photo-1485827404703-89b55fcc595e?auto=format&fit=crop&q=80&w=1000",
	},
	{
		ID: 5, Title: "Holo-Visor", Price: 150, Category: "Accessories", InStock: true,
		Colors: []string{"Red", "Blue", "Green"}, Sizes: []string{"S", "M", "L"},
		Gender: "Unisex", AgeGroup: "Kids",
		Description: "Augmented reality heads-up display.",
		Specs:       []string{"AR Overlay", "Gesture Control", "12hr Battery", "Lightweight"},
		Image:       "https://images.unsplash.com/photo-1535303311164-664fc9ec6532?auto=format&fit=crop&q=80&w=1000",
	},
	{
		ID: 6, Title: "Gravity Boots", Price: 450, Category: "Accessories", InStock: true,
		Colors: []string{"Black", "White"}, Sizes: []string{"M", "L", "XL"},
		Gender: "Unisex", AgeGroup: "Adults",
		Description: "Magnetic levitation footwear.",
		Specs:       []string{"MagLev Tech", "Impact Absorption", "Auto-Lacing", "Waterproof"},
		Image:       "https://images.unsplash.com/photo-1542291026-7eec264c27ff?auto=format&fit=crop&q=80&w=1000",
	},
	{
		ID: 7, Title: "Plasma Cutter", Price: 700, Category: "Gadgets", InStock: false,
		Colors: []string{"Red", "Black"}, Sizes: []string{"L"},
		Gender: "Men", AgeGroup: "Adults",
		Description: "Industrial grade energy tool.",
		Specs:       []string{"Plasma Arc", "Safety Lock", "Rechargeable", "Heavy Duty"},
		Image:       "https://images.unsplash.com/photo-1581091226825-a6a2a5aee158?auto=format&fit=crop&q=80&w=1000",
	},
	{
		ID: 8, Title: "Fusion Battery", Price: 120, Category: "Hardware", InStock: true,
		Colors: []string{"Green"}, Sizes: []string{"S"},
		Gender: "Unisex", AgeGroup: "Adults",
		Description: "Infinite power source.",
		Specs:       []string{"Cold Fusion", "Universal Fit", "Zero Emissions", "100 Year Life"},
		Image:       "https://images.unsplash.com/photo-1618172193763-c511deb635ca?auto=format&fit=crop&q=80&w=1000",
	},
	{
		ID: 9, Title: "Cyber-Pet", Price: 2000, Category: "Gadgets", InStock: true,
		Colors: []string{"White", "Purple"}, Sizes: []string{"S"},
		Gender: "Kids", AgeGroup: "Kids",
		Description: "Loyal robotic companion.",
		Specs:       []string{"AI Learning", "Voice Rec", "Emotion Engine", "Hypoallergenic"},
		Image:       "https://images.unsplash.com/photo-1534809027769-b00d750a6bac?auto=format&fit=crop&q=80&w=1000",
	},
	{
		ID: 10, Title: "Neural Link", Price: 5000, Category: "Cybernetics", InStock: true,
		Colors: []string{"Blue"}, Sizes: []string{"S"},
		Gender: "Unisex", AgeGroup: "Adults",
		Description: "Direct mind-to-cloud upload.",
		Specs:       []string{"10Gbps Uplink", "Thought Control", "Cloud Storage", "Encrypted"},
		Image:       "https://images.unsplash.com/photo-1555255707-c07966088b7b?auto=format&fit=crop&q=80&w=1000",
	},
}

// Products returns the full fixed catalogue.
func Products() []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}

// ProductByID looks up one product. Unknown ids fall back to the first
// catalogue entry so the detail page always has something to show.
func ProductByID(id int) Product {
	for _, p := range products {
		if p.ID == id {
			return p
		}
	}
	return products[0]
}
