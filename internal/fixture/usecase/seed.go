package usecase

import (
	"context"
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/google/uuid"

	"admin-datagrid/internal/fixture"
	"admin-datagrid/internal/model"
)

var (
	people     = []string{"Ana Silva", "Bao Tran", "Chidi Okafor", "Dana Kim", "Elif Yilmaz", "Farah Haddad", "Goran Petrov", "Hana Sato"}
	statuses   = []string{"pending", "in_progress", "completed", "cancelled"}
	priorities = []string{"low", "medium", "high"}
	ratings    = []string{"outstanding", "exceeds", "meets", "below", "unsatisfactory"}
	actions    = []string{"create", "update", "delete", "login", "logout", "export"}
	resources  = []string{"assignment", "product", "performance-record", "user"}
	categories = []string{"hardware", "software", "office", "services"}
)

// Seed fills every collection with generated records spread over the last
// 120 days. The generator is seeded so repeated runs produce the same data.
func (uc *implUseCase) Seed(ctx context.Context, n int) error {
	rng := rand.New(rand.NewPCG(7, 42))
	now := uc.now()

	gens := map[string]func(i int, at time.Time) fixture.Record{
		CollectionName(model.Assignments().Descriptor): func(i int, at time.Time) fixture.Record {
			who := rng.IntN(len(people))
			return fixture.Record{
				"title":        fmt.Sprintf("Assignment #%d", i+1),
				"description":  "Quarterly deliverable " + priorities[i%len(priorities)],
				"assigneeId":   fmt.Sprintf("user-%d", who+1),
				"assigneeName": people[who],
				"status":       statuses[rng.IntN(len(statuses))],
				"priority":     priorities[rng.IntN(len(priorities))],
				"dueDate":      at.AddDate(0, 0, 14).Format(time.DateOnly),
			}
		},
		CollectionName(model.PerformanceRecords().Descriptor): func(i int, at time.Time) fixture.Record {
			who := rng.IntN(len(people))
			return fixture.Record{
				"userId":   fmt.Sprintf("user-%d", who+1),
				"userName": people[who],
				"period":   fmt.Sprintf("%d-Q%d", at.Year(), (int(at.Month())-1)/3+1),
				"score":    float64(rng.IntN(1000)) / 10,
				"rating":   ratings[rng.IntN(len(ratings))],
				"reviewer": people[(who+1)%len(people)],
			}
		},
		auditLogsCollection: func(i int, at time.Time) fixture.Record {
			who := rng.IntN(len(people))
			return fixture.Record{
				"userId":     fmt.Sprintf("user-%d", who+1),
				"userName":   people[who],
				"action":     actions[rng.IntN(len(actions))],
				"resource":   resources[rng.IntN(len(resources))],
				"resourceId": uuid.NewString(),
				"details":    fmt.Sprintf("event %d", i+1),
				"ipAddress":  fmt.Sprintf("10.0.%d.%d", rng.IntN(256), rng.IntN(256)),
			}
		},
		productsCollection: func(i int, at time.Time) fixture.Record {
			rec := fixture.Record{
				"name":     fmt.Sprintf("Product %03d", i+1),
				"sku":      fmt.Sprintf("SKU-%05d", i+1),
				"category": categories[rng.IntN(len(categories))],
				"price":    float64(rng.IntN(100000)) / 100,
				"stock":    rng.IntN(500),
				"status":   model.ProductActive,
			}
			if i%3 == 0 {
				rec["status"] = model.ProductInactive
			}
			if i%2 == 0 {
				rec["imageUrl"] = fmt.Sprintf("https://img.example.com/products/%d.png", i+1)
			}
			return rec
		},
	}

	for _, name := range slices.Sorted(maps.Keys(gens)) {
		gen := gens[name]
		c, ok := uc.collections[name]
		if !ok {
			continue
		}
		for i := 0; i < n; i++ {
			at := now.Add(-time.Duration(rng.IntN(120*24)) * time.Hour)
			rec := gen(i, at)
			rec["id"] = uuid.NewString()
			rec["createdAt"] = at.Format(time.RFC3339)
			rec["updatedAt"] = at.Format(time.RFC3339)
			if err := validate(c, rec); err != nil {
				return fmt.Errorf("fixture.Seed %s: %w", name, err)
			}
			if _, err := uc.repo.Insert(ctx, name, rec); err != nil {
				return fmt.Errorf("fixture.Seed %s: %w", name, err)
			}
		}
	}
	uc.l.Infof(ctx, "fixture.Seed: %d records per collection", n)
	return nil
}
