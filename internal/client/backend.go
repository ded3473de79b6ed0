package client

import (
    "bytes"
    "context"
    "crypto/hmac"
    "crypto/sha256"
    "encoding/hex"
    "encoding/json"
    "fmt"
    "net/http"
    "net/url"

    "github.com/sirupsen/logrus"

    "offerconsole/internal/config"
    "offerconsole/internal/models"
)

// BackendClient talks to the persistence backend that owns the configured
// offer set. Reads retry; mutations are sent exactly once per confirmed
// gesture and carry an HMAC signature over the JSON body so the backend
// can authenticate the console.
type BackendClient struct {
    *httpClient
    baseURL string
    secret  string
}

func NewBackendClient(cfg *config.Config, logger *logrus.Logger) *BackendClient {
    return &BackendClient{
        httpClient: newHTTPClient(cfg, logger),
        baseURL:    cfg.BackendAPIURL,
        secret:     cfg.BackendSecret,
    }
}

func (c *BackendClient) FetchConfiguredOffers(ctx context.Context, kind, status string) ([]models.ConfiguredOffer, error) {
    query := url.Values{}
    if kind != "" {
        query.Set("kind", kind)
    }
    if status != "" {
        query.Set("status", status)
    }

    endpoint := fmt.Sprintf("%s/configured-offers", c.baseURL)
    if encoded := query.Encode(); encoded != "" {
        endpoint += "?" + encoded
    }

    var response models.ConfiguredOffersResponse
    if err := c.getJSON(ctx, endpoint, &response); err != nil {
        return nil, fmt.Errorf("failed to fetch configured offers: %w", err)
    }

    c.logger.WithField("records", len(response.Offers)).Info("Fetched configured offers")
    return response.Offers, nil
}

func (c *BackendClient) CreateConfiguredOffer(ctx context.Context, req models.CreateConfiguredRequest) (models.ConfiguredOffer, error) {
    var created models.ConfiguredOffer
    endpoint := fmt.Sprintf("%s/configured-offers", c.baseURL)
    if err := c.signedRequest(ctx, http.MethodPost, endpoint, req, &created); err != nil {
        return models.ConfiguredOffer{}, fmt.Errorf("failed to create configured offer: %w", err)
    }
    return created, nil
}

func (c *BackendClient) CreateConfiguredOffers(ctx context.Context, req models.BulkCreateRequest) ([]models.ConfiguredOffer, error) {
    var response models.ConfiguredOffersResponse
    endpoint := fmt.Sprintf("%s/configured-offers/bulk", c.baseURL)
    if err := c.signedRequest(ctx, http.MethodPost, endpoint, req, &response); err != nil {
        return nil, fmt.Errorf("failed to create configured offers: %w", err)
    }
    return response.Offers, nil
}

func (c *BackendClient) DeleteConfiguredOffer(ctx context.Context, configuredID string) error {
    endpoint := fmt.Sprintf("%s/configured-offers/%s", c.baseURL, url.PathEscape(configuredID))
    if err := c.signedRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
        return fmt.Errorf("failed to delete configured offer: %w", err)
    }
    return nil
}

func (c *BackendClient) UpdateConfiguredOfferReward(ctx context.Context, configuredID string, coins int) (models.ConfiguredOffer, error) {
    var updated models.ConfiguredOffer
    endpoint := fmt.Sprintf("%s/configured-offers/%s/reward", c.baseURL, url.PathEscape(configuredID))
    payload := models.UpdateRewardRequest{Coins: coins}
    if err := c.signedRequest(ctx, http.MethodPatch, endpoint, payload, &updated); err != nil {
        return models.ConfiguredOffer{}, fmt.Errorf("failed to update configured offer reward: %w", err)
    }
    return updated, nil
}

// signedRequest marshals the payload, signs it and issues a single
// request. Mutations are never retried here: one confirmed gesture maps
// to one call on the wire.
func (c *BackendClient) signedRequest(ctx context.Context, method, endpoint string, payload, target interface{}) error {
    var body []byte
    if payload != nil {
        var err error
        body, err = json.Marshal(payload)
        if err != nil {
            return fmt.Errorf("failed to marshal payload: %w", err)
        }
    }

    req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
    if err != nil {
        return fmt.Errorf("failed to create request: %w", err)
    }

    req.Header.Set("Content-Type", "application/json")
    req.Header.Set("X-Signature", c.signature(body))

    if err := c.do(req, target); err != nil {
        return err
    }

    c.logger.WithFields(logrus.Fields{
        "method":   method,
        "endpoint": endpoint,
    }).Info("Backend mutation completed")

    return nil
}

func (c *BackendClient) signature(body []byte) string {
    h := hmac.New(sha256.New, []byte(c.secret))
    h.Write(body)
    return "sha256=" + hex.EncodeToString(h.Sum(nil))
}
