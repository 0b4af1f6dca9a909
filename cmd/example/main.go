// example walks through a composition session against an in-memory store:
// load a page, add sections from templates, edit properties, reorder, and
// save.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/goliatone/go-composer"
	"github.com/goliatone/go-composer/builder"
	"github.com/goliatone/go-composer/editor"
	"github.com/goliatone/go-composer/internal/identity"
	"github.com/goliatone/go-composer/sections"
	"github.com/goliatone/go-composer/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "example: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	pageID := identity.PageUUID("example")
	memory := store.NewMemoryStore()
	memory.Put(&sections.Document{
		ID:     pageID,
		Fields: map[string]any{"title": "Example Page", "status": "draft"},
	})

	module, err := composer.New(composer.DefaultConfig(), composer.WithStore(memory))
	if err != nil {
		return err
	}

	session, err := module.OpenPage(pageID, builder.WithOperator(builder.Operator{
		ID:   identity.UUID("go-composer:operator:demo"),
		Role: "editor",
	}))
	if err != nil {
		return err
	}
	if _, err := session.Load(ctx); err != nil {
		return err
	}

	hero, err := session.AddFromTemplate(ctx, sections.TypeHero, "banner-classic")
	if err != nil {
		return err
	}
	fmt.Printf("added %s section %s\n", hero.Type, hero.ID)

	// Adding opens the new section for editing; tweak a couple of properties
	// on the working copy and commit.
	if err := session.UpdateWorkingProperty("title", "Hello from the composer"); err != nil {
		return err
	}
	if err := session.UpdateWorkingProperty("backgroundColor", "#0f172a"); err != nil {
		return err
	}
	if err := session.CommitEdit(ctx); err != nil {
		return err
	}

	gallery, err := session.AddFromTemplate(ctx, sections.TypeGallery, "gallery-carousel")
	if err != nil {
		return err
	}
	session.DiscardEdit()

	if err := session.MoveSection(ctx, gallery.ID, "up"); err != nil {
		return err
	}

	for _, section := range session.Sections() {
		fmt.Printf("%d: %s (%s)\n", section.Order, section.Type, section.TemplateID)
		for _, field := range editor.Inspect(section.Type, section.Content) {
			fmt.Printf("   %-16s %s\n", field.Name, field.Kind)
		}
	}

	if err := session.Save(ctx); err != nil {
		return err
	}
	fmt.Printf("saved revision %d\n", session.Revision())
	return nil
}
