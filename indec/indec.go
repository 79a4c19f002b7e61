// Package indec retrieves the INDEC consumer price index for Argentina from
// the datos.gob.ar series API, with a local JSON file cache. A network
// failure falls back to the expired cache rather than losing the figures;
// the result is then marked stale.
package indec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"

	"github.com/fgallo/cartera"
)

const (
	// DefaultSeriesID is the INDEC national CPI level, base December 2016.
	DefaultSeriesID = "148.3_INIVELNAL_DICI_M_26"
	DefaultBaseURL  = "https://apis.datos.gob.ar/series/api"

	defaultCacheTTL = 12 * time.Hour
	apiSource       = "apis.datos.gob.ar (INDEC)"
)

// Client fetches and caches the monthly price-index series. It implements
// cartera.PriceIndexStore.
type Client struct {
	SeriesID   string
	BaseURL    string
	CachePath  string
	CacheTTL   time.Duration
	HTTPClient *http.Client

	now func() time.Time
}

var _ cartera.PriceIndexStore = (*Client)(nil)

// New builds a client with the given cache path and the default INDEC
// series. Environment overrides:
//
//	CARTERA_INFLATION_SERIES_ID
//	CARTERA_INFLATION_API_BASE
func New(cachePath string) *Client {
	c := &Client{
		SeriesID:   DefaultSeriesID,
		BaseURL:    DefaultBaseURL,
		CachePath:  cachePath,
		CacheTTL:   defaultCacheTTL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
	if v := strings.TrimSpace(os.Getenv("CARTERA_INFLATION_SERIES_ID")); v != "" {
		c.SeriesID = v
	}
	if v := strings.TrimSpace(os.Getenv("CARTERA_INFLATION_API_BASE")); v != "" {
		c.BaseURL = v
	}
	return c
}

// cacheFile is the on-disk cache layout. Data rows are [month, value] pairs
// as the API returns them.
type cacheFile struct {
	SeriesID  string  `json:"series_id"`
	FetchedAt int64   `json:"fetched_at"`
	Source    string  `json:"source"`
	Data      [][]any `json:"data"`
}

// parsePoints converts raw [date, value] rows into index points. Rows that
// do not parse are skipped, not fatal: a single malformed row must not take
// the whole series down.
func parsePoints(rows [][]any) []cartera.PriceIndexPoint {
	var out []cartera.PriceIndexPoint
	for _, r := range rows {
		if len(r) < 2 {
			continue
		}
		ds, ok := r[0].(string)
		if !ok || len(ds) < 7 {
			continue
		}
		v, ok := r[1].(float64)
		if !ok {
			continue
		}
		m, err := cartera.ParseMonth(ds[:7])
		if err != nil {
			continue
		}
		out = append(out, cartera.PriceIndexPoint{Month: m, Value: v})
	}
	return out
}

func (c *Client) readCache() (*cacheFile, error) {
	b, err := os.ReadFile(c.CachePath)
	if err != nil {
		return nil, err
	}
	var f cacheFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decoding cache %s: %w", c.CachePath, err)
	}
	return &f, nil
}

// writeCache writes atomically so a concurrent reader never sees a torn file.
func (c *Client) writeCache(f *cacheFile) error {
	if err := os.MkdirAll(filepath.Dir(c.CachePath), 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(f)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(c.CachePath), ".indec-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), c.CachePath)
}

// covers reports whether the cached points start early enough for the
// requested range. The tail is not required: recent months are legitimately
// unpublished, and demanding them would force a refetch on every call.
func covers(points []cartera.PriceIndexPoint, from cartera.Month) bool {
	if len(points) == 0 {
		return false
	}
	lo := points[0].Month
	for _, p := range points[1:] {
		if p.Month.Before(lo) {
			lo = p.Month
		}
	}
	return !lo.After(from)
}

// fetch downloads the series rows from the API.
func (c *Client) fetch(from, to cartera.Month) ([][]any, error) {
	q := url.Values{}
	q.Set("ids", c.SeriesID)
	q.Set("start_date", from.First().String())
	q.Set("end_date", to.Last().String())
	q.Set("limit", "1000")
	u := strings.TrimRight(c.BaseURL, "/") + "/series?" + q.Encode()
	log.Println("Downloading from INDEC:", u)

	resp, err := c.HTTPClient.Get(u)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", c.SeriesID, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: received status %s", c.SeriesID, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	jval, err := jsonpath.Get("$.data", jobj)
	if err != nil {
		return nil, fmt.Errorf("extracting $.data: %w", err)
	}
	jrows, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("extracting $.data: not a list: %T", jval)
	}
	rows := make([][]any, 0, len(jrows))
	for _, jr := range jrows {
		if r, ok := jr.([]any); ok {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

// IndexSeries serves the index points of the requested month range. The
// resolution order is fresh cache, live API, then stale cache as a last
// resort (flagged on the series).
func (c *Client) IndexSeries(from, to cartera.Month) (*cartera.PriceIndexSeries, error) {
	now := c.now()

	cached, cacheErr := c.readCache()
	if cacheErr == nil {
		points := parsePoints(cached.Data)
		fresh := now.Sub(time.Unix(cached.FetchedAt, 0)) <= c.CacheTTL
		if fresh && covers(points, from) {
			return c.series(points, from, to, false, cached.Source), nil
		}
	}

	rows, err := c.fetch(from, to)
	if err == nil {
		points := parsePoints(rows)
		wf := &cacheFile{
			SeriesID:  c.SeriesID,
			FetchedAt: now.Unix(),
			Source:    apiSource,
			Data:      rows,
		}
		if werr := c.writeCache(wf); werr != nil {
			log.Println("indec: cache write failed:", werr)
		}
		return c.series(points, from, to, false, apiSource), nil
	}

	// The API is down or unreachable: expired figures beat no figures.
	if cacheErr == nil {
		points := parsePoints(cached.Data)
		if covers(points, from) {
			log.Println("indec: falling back to stale cache:", err)
			return c.series(points, from, to, true, cached.Source), nil
		}
	}
	return nil, errors.Join(err, cacheErr)
}

func (c *Client) series(points []cartera.PriceIndexPoint, from, to cartera.Month, stale bool, source string) *cartera.PriceIndexSeries {
	s := cartera.NewPriceIndexSeries()
	s.Stale = stale
	s.Source = source
	for _, p := range points {
		if p.Month.Before(from) || p.Month.After(to) {
			continue
		}
		s.Append(p)
	}
	return s
}
