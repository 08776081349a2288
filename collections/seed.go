package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type demoUserDef struct {
	username string
	fullName string
	role     string
	location string
}

// demoUsers are the accounts offered by the sign-in selector.
var demoUsers = []demoUserDef{
	{"anita", "Anita Desai", "admin", "Mumbai"},
	{"vikram", "Vikram Singh", "sales", "Mumbai"},
	{"ravi", "Ravi Kumar", "sales", "Delhi"},
	{"priya", "Priya Nair", "sales", "Chennai"},
	{"sourav", "Sourav Ghosh", "sales", "Kolkata"},
	{"meera", "Meera Joshi", "sales", "Pune"},
}

// Seed inserts the demo accounts when the demo_users collection is empty.
func Seed(app *pocketbase.PocketBase) error {
	col, err := app.FindCollectionByNameOrId("demo_users")
	if err != nil {
		return fmt.Errorf("seed: could not find demo_users collection: %w", err)
	}
	existing, err := app.FindAllRecords(col)
	if err != nil {
		return fmt.Errorf("seed: could not query demo_users: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: demo_users collection is empty, inserting demo accounts")

	for _, u := range demoUsers {
		rec := core.NewRecord(col)
		rec.Set("username", u.username)
		rec.Set("full_name", u.fullName)
		rec.Set("role", u.role)
		rec.Set("location", u.location)
		if err := app.Save(rec); err != nil {
			return fmt.Errorf("seed: could not save user %q: %w", u.username, err)
		}
	}

	log.Printf("seed: inserted %d demo accounts", len(demoUsers))
	return nil
}
