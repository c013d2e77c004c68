package corrections

// ocrCorrections maps known OCR misreads (lower-case) to their fixes.
// Entries come from observed scan output: the classic l/1/i, o/0, and
// rn/m confusions plus Cyrillic lookalike characters that OCR engines
// emit for stylized menu fonts.
var ocrCorrections = map[string]string{
	// proteins
	"chlcken":  "chicken",
	"chiken":   "chicken",
	"chickan":  "chicken",
	"cnicken":  "chicken",
	"ch1cken":  "chicken",
	"chleken":  "chicken",
	"chіcken":  "chicken", // Cyrillic і
	"веef":     "beef",    // Cyrillic в/е
	"beеf":     "beef",
	"beet":     "beef",
	"роrk":     "pork", // Cyrillic р/о
	"pоrk":     "pork",
	"flsh":     "fish",
	"f1sh":     "fish",
	"fіsh":     "fish",
	"shrіmp":   "shrimp",
	"shrlmp":   "shrimp",
	"shr1mp":   "shrimp",
	"shrinp":   "shrimp",
	"shnmp":    "shrimp",
	"lobstar":  "lobster",
	"l0bster":  "lobster",
	"turkеy":   "turkey",
	"salnon":   "salmon",
	"salrnon":  "salmon",
	"sa1mon":   "salmon",
	"salm0n":   "salmon",
	"t0fu":     "tofu",
	"larnb":    "lamb",
	"1amb":     "lamb",

	// seafood
	"sesfoco":  "seafood",
	"seatood":  "seafood",
	"seafocd":  "seafood",
	"seaf0od":  "seafood",
	"сrab":     "crab",
	"0yster":   "oyster",
	"oystar":   "oyster",
	"scall0p":  "scallop",
	"scaliop":  "scallop",
	"clarn":    "clam",
	"c1am":     "clam",
	"calamar1": "calamari",
	"ca1amari": "calamari",

	// section headers
	"appetlzers": "appetizers",
	"apetizers":  "appetizers",
	"appet1zers": "appetizers",
	"stаrters":   "starters",
	"entrées":    "entrees",
	"ma1ns":      "mains",
	"s1des":      "sides",
	"deserts":    "desserts",
	"bеverages":  "beverages",

	// drinks
	"c0ffee":   "coffee",
	"ju1ce":    "juice",
	"smooth1e": "smoothie",
	"cockta1l": "cocktail",
	"w1ne":     "wine",
	"bеer":     "beer",

	// sizes
	"sma1l":   "small",
	"srnall":  "small",
	"med1um":  "medium",
	"mediurn": "medium",
	"1arge":   "large",

	// pizza
	"pepperon1":  "pepperoni",
	"mushr0om":   "mushroom",
	"mushroon":   "mushroom",
	"sausagе":    "sausage",
	"anchov1es":  "anchovies",
	"0lives":     "olives",
	"ol1ves":     "olives",
	"jalapen0":   "jalapeno",
	"mozzare1la": "mozzarella",
}

// foodVocabulary is the fuzzy-match target set: valid words that appear
// on restaurant menus.
var foodVocabulary = []string{
	// proteins
	"chicken", "beef", "pork", "fish", "shrimp", "lobster", "crab",
	"salmon", "tuna", "cod", "tilapia", "turkey", "duck", "lamb", "veal",
	"bacon", "ham", "sausage", "steak", "ribs", "brisket", "tenderloin",
	"tofu", "tempeh", "seitan",

	// vegetables
	"tomato", "lettuce", "onion", "pepper", "mushroom", "spinach", "kale",
	"broccoli", "cauliflower", "carrot", "celery", "cucumber", "zucchini",
	"squash", "eggplant", "asparagus", "artichoke", "avocado", "corn",
	"potato", "beans", "peas", "cabbage", "sprouts",

	// fruits
	"apple", "banana", "orange", "lemon", "lime", "strawberry",
	"blueberry", "raspberry", "mango", "pineapple", "peach", "pear",
	"grape", "cherry", "watermelon", "coconut", "fig", "pomegranate",

	// grains
	"rice", "pasta", "bread", "noodles", "quinoa", "couscous", "barley",
	"oats", "tortilla", "pita", "naan", "baguette", "ciabatta", "focaccia",

	// dairy
	"cheese", "mozzarella", "parmesan", "cheddar", "swiss", "provolone",
	"feta", "gouda", "brie", "ricotta", "butter", "cream", "milk",
	"yogurt",

	// dishes
	"pizza", "burger", "sandwich", "salad", "soup", "stew", "curry",
	"risotto", "lasagna", "ravioli", "gnocchi", "taco", "burrito",
	"quesadilla", "enchilada", "nachos", "fajita", "sushi", "ramen",
	"pho", "wings", "nuggets", "fingers", "strips", "wrap", "roll",
	"bowl", "platter", "calzone", "bruschetta", "tenders", "sticks",

	// categories
	"appetizer", "appetizers", "starter", "starters", "entree", "entrees",
	"main", "mains", "side", "sides", "dessert", "desserts", "beverage",
	"beverages", "drink", "drinks", "special", "specials", "combo",
	"combos",

	// cooking methods
	"grilled", "fried", "baked", "roasted", "steamed", "sauteed",
	"braised", "smoked", "blackened", "poached", "broiled", "crispy",
	"stuffed", "glazed", "marinated",

	// descriptors
	"fresh", "homemade", "house", "signature", "classic", "traditional",
	"spicy", "mild", "hot", "sweet", "savory", "tangy", "zesty", "creamy",
	"crunchy", "tender", "juicy", "seasoned", "herb", "garlic",

	// sizes
	"small", "medium", "large", "personal", "regular", "half", "full",
	"single", "double", "triple",

	// toppings and sauces
	"pepperoni", "mushrooms", "olive", "olives", "onions", "peppers",
	"jalapeno", "jalapenos", "anchovy", "anchovies", "tomatoes", "basil",
	"sauce", "marinara", "alfredo", "pesto", "ranch", "buffalo", "bbq",
	"barbecue", "teriyaki", "honey", "mustard", "mayo", "aioli", "salsa",
	"guacamole", "hummus", "tzatziki", "gravy", "hollandaise",

	// drinks
	"coffee", "tea", "juice", "soda", "water", "lemonade", "smoothie",
	"shake", "milkshake", "wine", "beer", "cocktail", "margarita",

	// desserts
	"cake", "pie", "gelato", "sorbet", "brownie", "cookie", "cheesecake",
	"tiramisu", "mousse", "pudding", "cobbler", "sundae",
}
