package training

import (
	"github.com/rylessKechit/salesup/internal/domain"
)

// The fixed cast of roleplay customers. Personas never change at
// runtime; the variety comes from pairing them with random scenarios.
var customerPersonas = []domain.CustomerPersona{
	{
		Type:        "rushed",
		Description: "Business customer in a hurry who just wants to pick up the car quickly",
		Behavior:    "Impatient, refuses options, wants to go fast",
	},
	{
		Type:        "budget",
		Description: "Price-conscious customer who negotiates everything",
		Behavior:    "Questions every cost, compares prices, reluctant to extras",
	},
	{
		Type:        "business",
		Description: "Professional customer who prioritizes comfort and security",
		Behavior:    "Interested in premium insurance, comfort upgrades",
	},
	{
		Type:        "family",
		Description: "Customer with family who prioritizes safety",
		Behavior:    "Focus on child safety, space, comprehensive insurance",
	},
	{
		Type:        "reluctant",
		Description: "Customer who systematically refuses all options",
		Behavior:    "Suspicious, refuses everything, looks for scams",
	},
}

var scenarios = []string{
	"Picking up reservation with upgrade proposal",
	"Customer with vehicle availability issue",
	"Selling insurance to a reluctant customer",
	"Proposing upgrade to higher category",
	"Handling complaint from previous rental",
	"Customer hesitating between different insurances",
	"Cross-selling accessories (GPS, child seat)",
	"Customer wanting to cancel reservation",
	"Proposing electric vehicle upgrade",
	"Customer unhappy with final price",
}

// Canned opening lines used when OpenAI is not configured
var defaultOpenings = map[string]string{
	"rushed":    "Hello, I'm late for an important meeting, I just need to pick up my car quickly. What's the reference number?",
	"budget":    "Hi, I'm here for my reservation. I hope there won't be any hidden fees, I already paid online and don't want anything extra.",
	"business":  "Hello, I'm picking up the car reserved for my company. I need a reliable vehicle for my business trips this week.",
	"family":    "Hello, we're going on vacation with our two children. Is the car well-equipped and safe?",
	"reluctant": "Hello... so, I reserved a car but I read negative reviews online. I hope you won't try to sell me tons of unnecessary options.",
}

const fallbackOpening = "Hello, I'm here to pick up my reserved car."
