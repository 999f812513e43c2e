// Command seed inserts the demo student groups. Groups are never created by
// in-band traffic, so a fresh database needs one seed run.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/devhardik21/RootStudy/internal/config"
	"github.com/devhardik21/RootStudy/internal/gcp"
	"github.com/devhardik21/RootStudy/internal/models"
	"github.com/devhardik21/RootStudy/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("Seed failed.", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := gcp.NewFirestoreClient(ctx, cfg.ProjectID)
	if err != nil {
		return err
	}
	defer client.Close()

	st := store.New(client, store.Collections{
		Groups: cfg.GroupsCollection,
		Pages:  cfg.PagesCollection,
		Pdfs:   cfg.PdfCollection,
	})

	groups := []models.Group{
		{Name: "DSA Group", MemberCount: 30},
		{Name: "MERN Group", MemberCount: 45},
		{Name: "Hackathon Group", MemberCount: 50},
	}
	for _, g := range groups {
		created, err := st.CreateGroup(ctx, g)
		if err != nil {
			return err
		}
		slog.Info("Group created.", "id", created.ID, "name", created.Name)
	}
	return nil
}
