package client

import (
    "context"
    "fmt"
    "net/url"
    "strconv"

    "github.com/sirupsen/logrus"
    "golang.org/x/time/rate"

    "offerconsole/internal/config"
    "offerconsole/internal/models"
)

// ProviderClient fetches live catalogs from the upstream offer providers.
// Calls are rate limited so rapid filter changes cannot hammer a
// provider, and idempotent so the coordinator may repeat them freely.
type ProviderClient struct {
    *httpClient
    baseURL string
    limiter *rate.Limiter
}

func NewProviderClient(cfg *config.Config, logger *logrus.Logger) *ProviderClient {
    return &ProviderClient{
        httpClient: newHTTPClient(cfg, logger),
        baseURL:    cfg.ProviderAPIURL,
        limiter:    rate.NewLimiter(rate.Limit(cfg.ProviderRPS), 1),
    }
}

func (c *ProviderClient) FetchCatalog(ctx context.Context, provider string, kind models.OfferKind, filters models.CatalogFilters) ([]models.RawOffer, error) {
    if err := c.limiter.Wait(ctx); err != nil {
        return nil, err
    }

    query := url.Values{}
    query.Set("kind", string(kind))
    if filters.Country != "" {
        query.Set("country", filters.Country)
    }
    if filters.Device != "" {
        query.Set("device", filters.Device)
    }
    if filters.Type != "" {
        query.Set("type", filters.Type)
    }
    if filters.Page > 0 {
        query.Set("page", strconv.Itoa(filters.Page))
    }

    endpoint := fmt.Sprintf("%s/providers/%s/offers?%s", c.baseURL, url.PathEscape(provider), query.Encode())

    var response models.CatalogResponse
    if err := c.getJSON(ctx, endpoint, &response); err != nil {
        return nil, fmt.Errorf("failed to fetch %s catalog: %w", provider, err)
    }

    c.logger.WithFields(logrus.Fields{
        "provider": provider,
        "kind":     kind,
        "records":  len(response.Offers),
    }).Info("Fetched provider catalog")

    return response.Offers, nil
}
