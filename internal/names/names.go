// Package names supplies display names for generated survivors.
package names

import (
	"math/rand"
	"sync"
)

// FirstNames is a curated list of given names.
var FirstNames = []string{
	"Aaron", "Abigail", "Adam", "Alice", "Amanda", "Andrea", "Anna",
	"Arthur", "Barbara", "Benjamin", "Bruce", "Carl", "Carol", "Charlotte",
	"Christine", "Daniel", "Diana", "Dorothy", "Edward", "Emily", "Emma",
	"Eric", "Frank", "Grace", "Hannah", "Helen", "Henry", "Isabella",
	"Jack", "James", "Janet", "Jesse", "Joan", "John", "Judith", "Julia",
	"Karen", "Keith", "Laura", "Linda", "Louis", "Marcus", "Margaret",
	"Maria", "Martha", "Michael", "Nancy", "Nathan", "Nicole", "Oscar",
	"Patricia", "Paul", "Rachel", "Ralph", "Rebecca", "Rose", "Ruth",
	"Samuel", "Sarah", "Sophia", "Susan", "Thomas", "Victor", "Walter",
	"Wanda", "Wendy", "William", "Zachary",
}

// LastNames is a curated list of surnames.
var LastNames = []string{
	"Adams", "Anderson", "Baker", "Barnes", "Bell", "Bennett", "Brooks",
	"Brown", "Butler", "Campbell", "Carter", "Chen", "Clark", "Collins",
	"Cooper", "Cruz", "Davis", "Diaz", "Edwards", "Evans", "Fisher",
	"Flores", "Foster", "Garcia", "Gray", "Green", "Hall", "Harris",
	"Hayes", "Hill", "Howard", "Hughes", "Jackson", "Jenkins", "Kelly",
	"Kim", "King", "Lee", "Lewis", "Long", "Lopez", "Martin", "Miller",
	"Mitchell", "Moore", "Morgan", "Murphy", "Nelson", "Nguyen", "Parker",
	"Perez", "Perry", "Price", "Reed", "Reyes", "Rivera", "Rogers", "Ross",
	"Russell", "Sanders", "Scott", "Smith", "Stewart", "Sullivan", "Taylor",
	"Thomas", "Torres", "Turner", "Walker", "Ward", "Watson", "White",
	"Williams", "Wilson", "Wood", "Wright", "Young",
}

// Generator picks names from the curated lists. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))} // #nosec G404 -- display names
}

// FirstName returns a random given name.
func (g *Generator) FirstName() string { return g.pick(FirstNames) }

// LastName returns a random surname.
func (g *Generator) LastName() string { return g.pick(LastNames) }

func (g *Generator) pick(list []string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return list[g.rng.Intn(len(list))]
}
