package seeder

type SeedConfig struct {
	Customers  int   // Number of customers to create
	RandomSeed int64 // 0 seeds from the clock
}

type SeedStats struct {
	Customers     int
	Subscriptions int
	Tickets       int
}

type Plan struct {
	Tier           string
	MonthlyRevenue float64
}

var (
	Industries = []string{"Tech", "Healthcare", "Finance", "Retail"}
	Plans      = []Plan{
		{Tier: "Basic", MonthlyRevenue: 29.99},
		{Tier: "Pro", MonthlyRevenue: 99.99},
		{Tier: "Enterprise", MonthlyRevenue: 499.99},
	}
	Statuses   = []string{"Active", "Churned", "Past Due"}
	Priorities = []string{"Low", "Medium", "High"}

	// three Active entries give the 60/20/20 split
	statusPool = []string{"Active", "Active", "Active", "Churned", "Past Due"}
)

const (
	MaxSignupAgeDays   = 700
	MaxTicketsPerUser  = 3
	MaxResolutionHours = 48
	DefaultIssueType   = "Bug"
)

func planTiers() []string {
	tiers := make([]string, len(Plans))
	for i, p := range Plans {
		tiers[i] = p.Tier
	}
	return tiers
}
