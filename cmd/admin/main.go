// Operator tooling for the provider dataset: seeding sample records,
// migrating the legacy mapUrl field, and auditing maps coverage.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/MKhiriev/vetfinder/internal/config"
	"github.com/MKhiriev/vetfinder/internal/logger"
	"github.com/MKhiriev/vetfinder/internal/remote"
	"github.com/MKhiriev/vetfinder/models"
)

const providersCollection = "providers"

var sampleProviders = []map[string]any{
	{
		"name":    "Bangkok International Hospital",
		"country": "Thailand",
		"city":    "Bangkok",
		"billing": "Direct",
		"phone":   "+66-2-310-3000",
		"mapsUrl": "https://maps.app.goo.gl/qJmdV7dUExample",
	},
	{
		"name":    "Bumrungrad International Hospital",
		"country": "Thailand",
		"city":    "Bangkok",
		"billing": "Reimbursement",
		"phone":   "+66-2-667-1000",
		"mapsUrl": "https://maps.app.goo.gl/9kq8cZzExample",
	},
	{
		"name":    "St. Luke's Medical Center Global City",
		"country": "Philippines",
		"city":    "Taguig",
		"billing": "Direct",
		"phone":   "+63-2-8789-7700",
		"mapsUrl": "https://maps.app.goo.gl/AbCdEfExample",
	},
	{
		"name":    "Seoul National University Hospital",
		"country": "South Korea",
		"city":    "Seoul",
		"billing": "Reimbursement",
		"phone":   "+82-2-2072-2114",
		"mapsUrl": "https://maps.app.goo.gl/XYz123Example",
	},
}

func main() {
	log := logger.NewLogger("vetfinder-admin")

	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		usage()
		os.Exit(2)
	}
	command := os.Args[1]

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()
	store, authBackend, err := remote.NewBackends(ctx, cfg.Remote)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote backends")
	}
	defer func() { _ = store.Close() }()

	// The emulator requires a bearer token on every document call; the
	// providers collection is not user-scoped, so any identity works.
	if cfg.Remote.Backend == config.RemoteBackendHTTP {
		if _, err = authBackend.SignInAnonymously(ctx); err != nil {
			log.Fatal().Err(err).Msg("sign in to emulator")
		}
	}

	switch command {
	case "seed":
		err = runSeed(ctx, store)
	case "migrate-maps":
		err = runMigrateMaps(ctx, store)
	case "audit":
		err = runAudit(ctx, store)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("admin command failed")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admin <seed|migrate-maps|audit> [flags]")
}

// runSeed writes the sample providers, each under a fresh auto id. Only
// the canonical mapsUrl spelling is written, never a legacy field.
func runSeed(ctx context.Context, store remote.DocumentStore) error {
	seeded := 0
	for _, sample := range sampleProviders {
		data := make(map[string]any, len(sample))
		for k, v := range sample {
			s, ok := v.(string)
			if !ok {
				data[k] = v
				continue
			}
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				data[k] = trimmed
			}
		}

		name, _ := data["name"].(string)
		if name == "" {
			continue
		}
		if billing, ok := data["billing"].(string); ok {
			if normalized := models.NormalizeBilling(billing); normalized != "" {
				data["billing"] = normalized
			} else {
				delete(data, "billing")
			}
		}

		path := providersCollection + "/" + uuid.NewString()
		if err := store.SetDocument(ctx, path, data, false); err != nil {
			return fmt.Errorf("seed provider %q: %w", name, err)
		}
		seeded++
	}

	docs, err := store.ListCollection(ctx, providersCollection)
	if err != nil {
		return fmt.Errorf("count providers: %w", err)
	}

	fmt.Printf("Seeded %d provider(s). Total providers now: %d.\n", seeded, len(docs))
	return nil
}

// runMigrateMaps renames the legacy mapUrl field to mapsUrl, keeping the
// value and removing the old field. Documents that already carry mapsUrl
// are left alone.
func runMigrateMaps(ctx context.Context, store remote.DocumentStore) error {
	docs, err := store.ListCollection(ctx, providersCollection)
	if err != nil {
		return fmt.Errorf("list providers: %w", err)
	}
	fmt.Printf("Scanning %d providers...\n", len(docs))

	changed := 0
	for _, doc := range docs {
		legacy, _ := doc.Data["mapUrl"].(string)
		canonical, _ := doc.Data["mapsUrl"].(string)
		if legacy == "" || canonical != "" {
			continue
		}

		patch := map[string]any{
			"mapsUrl": legacy,
			"mapUrl":  remote.Delete,
		}
		if err := store.SetDocument(ctx, providersCollection+"/"+doc.ID, patch, true); err != nil {
			return fmt.Errorf("migrate provider %s: %w", doc.ID, err)
		}
		changed++
		fmt.Printf("  %s: mapUrl -> mapsUrl\n", doc.ID)
	}

	fmt.Printf("Migration complete. Updated %d doc(s).\n", changed)
	return nil
}

// runAudit lists providers missing any usable maps targeting info: no
// mapsUrl, no placeId, and no lat/lng pair.
func runAudit(ctx context.Context, store remote.DocumentStore) error {
	docs, err := store.ListCollection(ctx, providersCollection)
	if err != nil {
		return fmt.Errorf("list providers: %w", err)
	}

	flagged := 0
	for _, doc := range docs {
		mapsURL, _ := doc.Data["mapsUrl"].(string)
		placeID, _ := doc.Data["placeId"].(string)
		_, hasLat := doc.Data["lat"]
		_, hasLng := doc.Data["lng"]
		if mapsURL != "" || placeID != "" || (hasLat && hasLng) {
			continue
		}

		name, _ := doc.Data["name"].(string)
		fmt.Printf("  %s │ %s │ no mapsUrl/placeId/coords\n", doc.ID, valueOr(name, "-"))
		flagged++
	}

	if flagged == 0 {
		fmt.Printf("Audited %d provider(s): all have maps targeting info.\n", len(docs))
	} else {
		fmt.Printf("Audited %d provider(s): %d missing maps targeting info.\n", len(docs), flagged)
	}
	return nil
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
