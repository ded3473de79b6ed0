package client

import (
    "context"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "time"

    "github.com/sirupsen/logrus"

    "offerconsole/internal/config"
)

// httpClient is the shared transport: bounded timeout, retry with square
// backoff on transport and 5xx failures, no retry on 4xx. Only reads go
// through the retry path; mutations are issued exactly once per gesture.
type httpClient struct {
    client        *http.Client
    retryAttempts int
    logger        *logrus.Logger
}

func newHTTPClient(cfg *config.Config, logger *logrus.Logger) *httpClient {
    return &httpClient{
        client: &http.Client{
            Timeout: cfg.HTTPTimeout,
        },
        retryAttempts: cfg.RetryAttempts,
        logger:        logger,
    }
}

func (c *httpClient) getJSON(ctx context.Context, url string, target interface{}) error {
    var lastErr error

    for attempt := 0; attempt < c.retryAttempts; attempt++ {
        if attempt > 0 {
            backoffTime := time.Duration(attempt*attempt) * time.Second
            c.logger.WithFields(logrus.Fields{
                "attempt": attempt + 1,
                "backoff": backoffTime,
                "url":     url,
            }).Warn("Retrying request after backoff")
            select {
            case <-time.After(backoffTime):
            case <-ctx.Done():
                return ctx.Err()
            }
        }

        req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
        if err != nil {
            return fmt.Errorf("failed to create request: %w", err)
        }

        resp, err := c.client.Do(req)
        if err != nil {
            lastErr = err
            continue
        }

        if resp.StatusCode >= 500 {
            resp.Body.Close()
            lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
            continue
        }

        if resp.StatusCode >= 400 {
            resp.Body.Close()
            return fmt.Errorf("client error: %d", resp.StatusCode)
        }

        body, err := io.ReadAll(resp.Body)
        resp.Body.Close()

        if err != nil {
            lastErr = err
            continue
        }

        if err := json.Unmarshal(body, target); err != nil {
            lastErr = err
            continue
        }

        return nil
    }

    return fmt.Errorf("all retry attempts failed, last error: %w", lastErr)
}

// do issues a single non-retried request and decodes the response when
// target is non-nil.
func (c *httpClient) do(req *http.Request, target interface{}) error {
    resp, err := c.client.Do(req)
    if err != nil {
        return err
    }
    defer resp.Body.Close()

    if resp.StatusCode >= 400 {
        return fmt.Errorf("backend error: %d", resp.StatusCode)
    }

    if target == nil {
        io.Copy(io.Discard, resp.Body)
        return nil
    }

    body, err := io.ReadAll(resp.Body)
    if err != nil {
        return err
    }
    return json.Unmarshal(body, target)
}
