package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Roles a demo account can have.
var Roles = []string{"admin", "sales"}

// Setup programmatically creates/ensures the demo_users collection exists.
func Setup(app *pocketbase.PocketBase) {
	ensureCollection(app, "demo_users", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "username", Required: true})
		c.Fields.Add(&core.TextField{Name: "full_name", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "role",
			Required:  true,
			Values:    Roles,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "location", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_demo_users_username", true, "username", "")
	})
}

// ensureCollection checks whether a collection with the given name already
// exists. If it does, it is returned as-is. Otherwise a new base collection
// is created, the addFields callback is called to populate its schema, and
// the collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
