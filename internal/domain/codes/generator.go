package codes

import (
	"context"
	"fmt"
)

// MaxCodeRetries bounds collision retries when minting a code.
const MaxCodeRetries = 12

// ExistsFunc reports whether a code is already taken.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generator mints codes that are not yet in use.
type Generator struct {
	exists ExistsFunc
	next   func() (string, error)
}

func NewGenerator(exists ExistsFunc) *Generator {
	return &Generator{exists: exists, next: NewCode}
}

// Unique returns a fresh code, retrying up to MaxCodeRetries times on collision.
func (g *Generator) Unique(ctx context.Context) (string, error) {
	for i := 0; i < MaxCodeRetries; i++ {
		code, err := g.next()
		if err != nil {
			return "", err
		}

		taken, err := g.exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code existence: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	return "", fmt.Errorf("could not generate a unique code after %d attempts", MaxCodeRetries)
}
