// Package weather fetches today's weather description from the weather feed.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// ErrUnavailable wraps every failure to produce a description for today.
var ErrUnavailable = errors.New("weather unavailable")

// Forecast is one entry of the feed. Date is formatted as MM-dd.
type Forecast struct {
	Date    string `json:"date"`
	Weather string `json:"weather"`
}

// Provider is what the todo service needs from a weather source.
type Provider interface {
	TodayWeather(ctx context.Context) (string, error)
}

type Client struct {
	url        string
	httpClient *http.Client
	maxRetries uint64
	now        func() time.Time
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithMaxRetries(n uint64) Option {
	return func(cl *Client) { cl.maxRetries = n }
}

func WithClock(now func() time.Time) Option {
	return func(cl *Client) { cl.now = now }
}

func NewClient(url string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: 2,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TodayWeather returns the feed's description for the current month and day.
// Transport errors and 5xx responses are retried with exponential backoff; a
// missing day or an empty feed is not.
func (c *Client) TodayWeather(ctx context.Context) (string, error) {
	var forecasts []Forecast
	operation := func() error {
		var err error
		forecasts, err = c.fetch(ctx)
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(newBackOff(), c.maxRetries),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(forecasts) == 0 {
		return "", fmt.Errorf("%w: 날씨 데이터가 없습니다.", ErrUnavailable)
	}
	today := c.now().Format("01-02")
	for _, f := range forecasts {
		if f.Date == today {
			return f.Weather, nil
		}
	}
	return "", fmt.Errorf("%w: 오늘에 해당하는 날씨 데이터를 찾을 수 없습니다.", ErrUnavailable)
}

func (c *Client) fetch(ctx context.Context) ([]Forecast, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("날씨 데이터를 가져오는데 실패했습니다. 상태 코드: %d", resp.StatusCode)
		if resp.StatusCode >= 500 {
			return nil, err
		}
		return nil, backoff.Permanent(err)
	}

	var forecasts []Forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecasts); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode weather feed: %w", err))
	}
	return forecasts, nil
}

func newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 100 * time.Millisecond
	b.MaxInterval = time.Second
	b.MaxElapsedTime = 5 * time.Second
	return b
}
