package seeder

import (
	"fmt"
	"math/rand"
	"time"
)

type DataGenerator struct {
	rand *rand.Rand
	now  time.Time
}

func NewDataGenerator(seed int64) *DataGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DataGenerator{
		rand: rand.New(rand.NewSource(seed)),
		now:  time.Now(),
	}
}

// CompanyName names the n-th customer, counting from 1.
func (g *DataGenerator) CompanyName(n int) string {
	return fmt.Sprintf("Company_%d", n)
}

func (g *DataGenerator) Industry() string {
	return Industries[g.rand.Intn(len(Industries))]
}

// SignupDate is between 0 and MaxSignupAgeDays days before now, as YYYY-MM-DD.
func (g *DataGenerator) SignupDate() string {
	days := g.rand.Intn(MaxSignupAgeDays + 1)
	return g.now.AddDate(0, 0, -days).Format("2006-01-02")
}

func (g *DataGenerator) Plan() Plan {
	return Plans[g.rand.Intn(len(Plans))]
}

func (g *DataGenerator) Status() string {
	return statusPool[g.rand.Intn(len(statusPool))]
}

func (g *DataGenerator) TicketCount() int {
	return g.rand.Intn(MaxTicketsPerUser + 1)
}

func (g *DataGenerator) Priority() string {
	return Priorities[g.rand.Intn(len(Priorities))]
}

func (g *DataGenerator) ResolutionHours() int {
	return g.rand.Intn(MaxResolutionHours) + 1
}
