// Package seeders loads starter documents into the store.
//
// Categories are maintained outside the API, so a fresh deployment seeds
// them from a JSON file:
//
//	copshop seed --file config/categories.json
package seeders

import (
	"context"
	"fmt"
	"io"

	"github.com/akil18/cop-shop-server-side/pkg/store"
)

// SeederFunc inserts documents through gw.
type SeederFunc func(ctx context.Context, gw store.Gateway) error

// Seeder is a named SeederFunc.
type Seeder struct {
	Name string
	Fn   SeederFunc
}

// Run executes seeders in order, reporting progress to w. It stops on the
// first error.
func Run(ctx context.Context, gw store.Gateway, w io.Writer, seeders ...Seeder) error {
	if len(seeders) == 0 {
		fmt.Fprintln(w, "  (no seeders to run)")
		return nil
	}

	for _, s := range seeders {
		fmt.Fprintf(w, "  • Running seeder: %s … ", s.Name)
		if err := s.Fn(ctx, gw); err != nil {
			fmt.Fprintln(w, "FAILED")
			return fmt.Errorf("seeder %q: %w", s.Name, err)
		}
		fmt.Fprintln(w, "done")
	}
	return nil
}
