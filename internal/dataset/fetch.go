package dataset

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/xuri/excelize/v2"

	"allergy-insights-go/internal/logger"
	"allergy-insights-go/internal/types"
)

var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// loadRemote downloads a workbook over HTTP and parses it in memory.
// Transient failures (network errors, 5xx) are retried with exponential
// backoff; 4xx responses fail immediately.
func loadRemote(url string) ([]types.ProductRecord, error) {
	log := logger.Component("dataset").WithField("url", url)
	log.Info("fetching remote dataset")

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute

	var body []byte
	operation := func() error {
		resp, err := httpClient.Get(url)
		if err != nil {
			log.WithField("error", err.Error()).Warn("dataset fetch failed, retrying")
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			err := fmt.Errorf("server error: %s", resp.Status)
			log.WithField("status", resp.Status).Warn("dataset fetch failed, retrying")
			return err
		}
		if resp.StatusCode >= 300 {
			return backoff.Permanent(fmt.Errorf("fetch dataset: %s", resp.Status))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}
	if err := backoff.Retry(operation, bo); err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("open fetched workbook: %w", err)
	}
	defer f.Close()
	return fromWorkbook(f)
}
