package config

import "strings"

// SeedSubdomain is a second-level entry in the seed taxonomy.
type SeedSubdomain struct {
	Label   string
	Aliases []string
}

// SeedDomain is a top-level entry in the seed taxonomy.
type SeedDomain struct {
	Label      string
	Aliases    []string
	Subdomains []SeedSubdomain
}

// SeedDomains is the fixed taxonomy pre-populated before any user
// classification occurs. Labels are canonical; aliases feed the quick-match
// map and the fallback classifier.
var SeedDomains = []SeedDomain{
	{
		Label:   "Health & Fitness",
		Aliases: []string{"health", "fitness", "wellness", "exercise", "workout", "gym"},
		Subdomains: []SeedSubdomain{
			{Label: "Weight Loss", Aliases: []string{"fat loss", "cutting", "calorie deficit", "diet"}},
			{Label: "Bulking", Aliases: []string{"muscle gain", "mass building", "weight gain"}},
			{Label: "Exercise", Aliases: []string{"workout", "training", "cardio", "strength"}},
			{Label: "Nutrition", Aliases: []string{"diet", "food", "eating", "macros", "calories"}},
			{Label: "Recovery", Aliases: []string{"rest", "sleep", "stretching", "mobility"}},
			{Label: "Mental Health", Aliases: []string{"anxiety", "depression", "stress", "meditation"}},
		},
	},
	{
		Label:   "Computer Science",
		Aliases: []string{"programming", "coding", "software", "tech", "development", "engineering"},
		Subdomains: []SeedSubdomain{
			{Label: "Frontend", Aliases: []string{"ui", "ux", "react", "vue", "css", "html", "web design"}},
			{Label: "Backend", Aliases: []string{"server", "api", "nodejs", "python", "java", "database"}},
			{Label: "Cloud", Aliases: []string{"aws", "azure", "gcp", "devops", "kubernetes", "docker"}},
			{Label: "Databases", Aliases: []string{"sql", "nosql", "postgres", "mongodb", "redis"}},
			{Label: "Security", Aliases: []string{"cybersecurity", "encryption", "authentication", "hacking"}},
			{Label: "AI & ML", Aliases: []string{"machine learning", "artificial intelligence", "deep learning", "nlp"}},
			{Label: "Programming Languages", Aliases: []string{"python", "javascript", "rust", "go", "typescript"}},
			{Label: "Mobile Development", Aliases: []string{"ios", "android", "react native", "flutter", "swift"}},
		},
	},
	{
		Label:   "Work",
		Aliases: []string{"job", "career", "professional", "business", "office"},
		Subdomains: []SeedSubdomain{
			{Label: "Meetings", Aliases: []string{"call", "standup", "sync", "conference"}},
			{Label: "Projects", Aliases: []string{"task", "deadline", "deliverable", "milestone"}},
			{Label: "Career Development", Aliases: []string{"promotion", "skills", "growth", "interview"}},
			{Label: "Management", Aliases: []string{"leadership", "team", "hiring", "feedback"}},
			{Label: "Networking", Aliases: []string{"connections", "linkedin", "contacts"}},
		},
	},
	{
		Label:   "Cooking",
		Aliases: []string{"food", "recipes", "culinary", "kitchen", "meal prep"},
		Subdomains: []SeedSubdomain{
			{Label: "Recipes", Aliases: []string{"dish", "meal", "instructions"}},
			{Label: "Techniques", Aliases: []string{"method", "skill", "how to cook"}},
			{Label: "Cuisines", Aliases: []string{"italian", "asian", "mexican", "indian"}},
			{Label: "Baking", Aliases: []string{"desserts", "bread", "pastry", "cakes"}},
			{Label: "Meal Planning", Aliases: []string{"prep", "weekly meals", "grocery"}},
		},
	},
	{
		Label:   "Personal Finance",
		Aliases: []string{"money", "finance", "budget", "investing", "savings"},
		Subdomains: []SeedSubdomain{
			{Label: "Budgeting", Aliases: []string{"spending", "expenses", "tracking money"}},
			{Label: "Investing", Aliases: []string{"stocks", "crypto", "bonds", "portfolio"}},
			{Label: "Savings", Aliases: []string{"emergency fund", "retirement", "saving money"}},
			{Label: "Taxes", Aliases: []string{"tax return", "deductions", "irs"}},
			{Label: "Debt", Aliases: []string{"loans", "credit card", "mortgage", "paying off"}},
		},
	},
	{
		Label:   "Travel",
		Aliases: []string{"vacation", "trip", "tourism", "adventure", "destination"},
		Subdomains: []SeedSubdomain{
			{Label: "Destinations", Aliases: []string{"places", "cities", "countries", "locations"}},
			{Label: "Planning", Aliases: []string{"itinerary", "booking", "flights", "hotels"}},
			{Label: "Tips", Aliases: []string{"hacks", "advice", "recommendations"}},
			{Label: "Reviews", Aliases: []string{"experiences", "recommendations", "ratings"}},
		},
	},
	{
		Label:   "Shopping & Gifts",
		Aliases: []string{"buying", "products", "gifts", "purchases", "wishlist"},
		Subdomains: []SeedSubdomain{
			{Label: "Wishlist", Aliases: []string{"want list", "to buy", "save for later"}},
			{Label: "Gift Ideas", Aliases: []string{"presents", "birthday gifts", "christmas gifts"}},
			{Label: "Deals", Aliases: []string{"sales", "discounts", "coupons", "offers"}},
			{Label: "Reviews", Aliases: []string{"product reviews", "ratings", "comparisons"}},
		},
	},
	{
		Label:   "Relationships",
		Aliases: []string{"social", "family", "friends", "dating", "love"},
		Subdomains: []SeedSubdomain{
			{Label: "Family", Aliases: []string{"parents", "kids", "siblings", "relatives"}},
			{Label: "Friends", Aliases: []string{"friendship", "social life", "hanging out"}},
			{Label: "Dating", Aliases: []string{"romance", "love", "partner", "relationship advice"}},
			{Label: "Communication", Aliases: []string{"talking", "listening", "conflict resolution"}},
		},
	},
	{
		Label:   "Productivity",
		Aliases: []string{"efficiency", "organization", "time management", "getting things done"},
		Subdomains: []SeedSubdomain{
			{Label: "Time Management", Aliases: []string{"scheduling", "calendar", "planning"}},
			{Label: "Tools", Aliases: []string{"apps", "software", "systems"}},
			{Label: "Habits", Aliases: []string{"routines", "discipline", "consistency"}},
			{Label: "Focus", Aliases: []string{"concentration", "deep work", "distraction"}},
		},
	},
	{
		Label:   "Hobbies",
		Aliases: []string{"interests", "leisure", "fun", "activities", "pastimes"},
		Subdomains: []SeedSubdomain{
			{Label: "Gaming", Aliases: []string{"video games", "games", "esports"}},
			{Label: "Music", Aliases: []string{"songs", "instruments", "bands", "listening"}},
			{Label: "Art", Aliases: []string{"drawing", "painting", "design", "creativity"}},
			{Label: "Sports", Aliases: []string{"athletics", "teams", "playing"}},
			{Label: "Reading", Aliases: []string{"books", "articles", "literature"}},
			{Label: "Photography", Aliases: []string{"photos", "camera", "editing"}},
		},
	},
	{
		Label:   "Education",
		Aliases: []string{"learning", "school", "courses", "study", "knowledge"},
		Subdomains: []SeedSubdomain{
			{Label: "Courses", Aliases: []string{"classes", "tutorials", "lessons"}},
			{Label: "Research", Aliases: []string{"papers", "studies", "articles"}},
			{Label: "Notes", Aliases: []string{"study notes", "summaries", "key points"}},
			{Label: "Languages", Aliases: []string{"foreign languages", "learning languages"}},
		},
	},
	{
		Label:   "News & Current Events",
		Aliases: []string{"news", "current events", "politics", "world events"},
		Subdomains: []SeedSubdomain{
			{Label: "Politics", Aliases: []string{"government", "elections", "policy"}},
			{Label: "Technology News", Aliases: []string{"tech news", "gadgets", "innovation"}},
			{Label: "Business News", Aliases: []string{"economy", "markets", "companies"}},
			{Label: "Science", Aliases: []string{"discoveries", "research", "breakthroughs"}},
		},
	},
	{
		Label:   "Entertainment",
		Aliases: []string{"movies", "tv", "shows", "media", "fun"},
		Subdomains: []SeedSubdomain{
			{Label: "Movies", Aliases: []string{"films", "cinema", "movie reviews"}},
			{Label: "TV Shows", Aliases: []string{"series", "streaming", "episodes"}},
			{Label: "Podcasts", Aliases: []string{"audio", "shows", "episodes"}},
			{Label: "YouTube", Aliases: []string{"videos", "channels", "creators"}},
		},
	},
	{
		Label:   "Personal",
		Aliases: []string{"me", "self", "diary", "journal", "thoughts"},
		Subdomains: []SeedSubdomain{
			{Label: "Journal", Aliases: []string{"diary", "thoughts", "reflections"}},
			{Label: "Goals", Aliases: []string{"resolutions", "targets", "aspirations"}},
			{Label: "Ideas", Aliases: []string{"thoughts", "brainstorm", "concepts"}},
			{Label: "Memories", Aliases: []string{"photos", "events", "nostalgia"}},
		},
	},
}

// BuildAliasMap maps lowercase aliases to canonical names. Domain aliases map
// to the domain label; subdomain labels and aliases map to "Domain/Subdomain".
func BuildAliasMap(domains []SeedDomain) map[string]string {
	aliasMap := make(map[string]string)

	for _, domain := range domains {
		aliasMap[strings.ToLower(domain.Label)] = domain.Label
		for _, alias := range domain.Aliases {
			aliasMap[strings.ToLower(alias)] = domain.Label
		}

		for _, sub := range domain.Subdomains {
			canonical := domain.Label + "/" + sub.Label
			aliasMap[strings.ToLower(sub.Label)] = canonical
			for _, alias := range sub.Aliases {
				aliasMap[strings.ToLower(alias)] = canonical
			}
		}
	}

	return aliasMap
}
