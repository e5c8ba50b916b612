package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oral0005/backend-posylka/internal/apperr"
)

// PriceLookup reads the precomputed route-price table populated by the
// offline pipeline.
type PriceLookup interface {
	Lookup(ctx context.Context, fromCity, toCity string) (float64, error)
}

type RecommendPrice struct {
	redisClient *redis.Client
	prices      PriceLookup
}

func NewRecommendPrice(redisClient *redis.Client, prices PriceLookup) *RecommendPrice {
	return &RecommendPrice{
		redisClient: redisClient,
		prices:      prices,
	}
}

// The table is rebuilt offline at most daily, so a generous cache TTL
// is safe.
const priceCacheTTL = 10 * time.Minute

// Execute looks the route up in the stored direction first and falls
// back to the reversed pair: a price is assumed symmetric when only one
// direction was precomputed.
func (uc *RecommendPrice) Execute(ctx context.Context, fromCity, toCity string) (float64, error) {
	fromCity = strings.TrimSpace(fromCity)
	toCity = strings.TrimSpace(toCity)
	if fromCity == "" || toCity == "" {
		return 0, fmt.Errorf("%w: from and to are required", apperr.ErrValidation)
	}

	cacheKey := fmt.Sprintf("price:%s:%s", strings.ToLower(fromCity), strings.ToLower(toCity))

	if uc.redisClient != nil {
		if val, err := uc.redisClient.Get(ctx, cacheKey).Result(); err == nil {
			if price, err := strconv.ParseFloat(val, 64); err == nil {
				return price, nil
			}
		}
	}

	price, err := uc.prices.Lookup(ctx, fromCity, toCity)
	if errors.Is(err, apperr.ErrNotFound) {
		price, err = uc.prices.Lookup(ctx, toCity, fromCity)
	}
	if err != nil {
		return 0, err
	}

	if uc.redisClient != nil {
		uc.redisClient.Set(ctx, cacheKey, strconv.FormatFloat(price, 'f', -1, 64), priceCacheTTL)
	}

	return price, nil
}
