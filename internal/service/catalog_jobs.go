package service

import (
	"context"
	"log"
	"time"
)

const trendingTopN = 10

// CatalogJobs refresca los flags derivados del catálogo (trending,
// newRelease). Lo dispara un cron desde main, una vez por hora.
type CatalogJobs struct {
	content CatalogFlagStore
}

func NewCatalogJobs(content CatalogFlagStore) *CatalogJobs {
	return &CatalogJobs{content: content}
}

// RefreshFlags recalcula trending (top por views) y newRelease (estrenos del
// año pasado en adelante).
func (j *CatalogJobs) RefreshFlags(ctx context.Context) {
	if err := j.content.RefreshTrending(ctx, trendingTopN); err != nil {
		log.Printf("[jobs] refresh de trending falló: %v", err)
	}

	minYear := time.Now().UTC().Year() - 1
	if err := j.content.RefreshNewRelease(ctx, minYear); err != nil {
		log.Printf("[jobs] refresh de newRelease falló: %v", err)
	}
}
