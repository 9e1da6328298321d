package ingest

import (
	"context"
	"fmt"
	"log"

	"github.com/arenalab/arena-advisor/internal/storage"
)

// Sync fetches the remote roster and upserts it into the local cache.
// Returns the number of characters stored.
func Sync(ctx context.Context, client *Client, db *storage.DB) (int, error) {
	chars, err := client.FetchRoster(ctx)
	if err != nil {
		return 0, err
	}

	if err := db.SaveCharacters(ctx, chars); err != nil {
		return 0, fmt.Errorf("failed to cache roster: %w", err)
	}

	log.Printf("Ingested %d characters", len(chars))
	return len(chars), nil
}
