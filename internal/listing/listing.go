// Package listing pulls clinic names from a public listing site. Extraction
// is a line-based substring match and stops working whenever the site changes
// its markup; an empty result with a note is the expected steady state.
package listing

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sasank-in/skin-disease/internal/metrics"
)

// Clinic is one scraped listing entry.
type Clinic struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Clinic    string `json:"clinic"`
	Location  string `json:"location"`
	Fee       string `json:"fee"`
}

// Scraper finds clinics near a free-text location. A non-empty note explains
// an empty result.
type Scraper interface {
	Clinics(ctx context.Context, location string) ([]Clinic, string)
}

const (
	maxClinics    = 15
	maxNameLength = 120
	defaultBase   = "https://www.practo.com"
)

var markers = []string{"clinic-card", "clinic-name"}

// Practo scrapes the skin-clinic listing pages of practo.com.
type Practo struct {
	BaseURL   string
	UserAgent string
	Cookie    string
	Client    *http.Client
}

func NewPracto(userAgent, cookie string, timeout time.Duration) *Practo {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Practo{
		BaseURL:   defaultBase,
		UserAgent: userAgent,
		Cookie:    cookie,
		Client:    &http.Client{Timeout: timeout},
	}
}

// URL builds the listing page for location, e.g. "New Delhi" -> /new-delhi/clinics/skin-clinics.
func (p *Practo) URL(location string) string {
	base := strings.TrimRight(p.BaseURL, "/")
	if base == "" {
		base = defaultBase
	}
	slug := Slug(location)
	if slug == "" {
		return base + "/location/clinics/skin-clinics"
	}
	return base + "/" + slug + "/clinics/skin-clinics"
}

// Slug lower-cases location and joins its words with '-'.
func Slug(location string) string {
	return strings.Join(strings.Fields(strings.ToLower(location)), "-")
}

func (p *Practo) Clinics(ctx context.Context, location string) ([]Clinic, string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL(location), nil)
	if err != nil {
		metrics.ListingFetches.WithLabelValues("error").Inc()
		return nil, fmt.Sprintf("Unable to load live Practo listings: %v", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", defaultBase+"/")
	if p.Cookie != "" {
		req.Header.Set("Cookie", p.Cookie)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		metrics.ListingFetches.WithLabelValues("error").Inc()
		return nil, fmt.Sprintf("Unable to load live Practo listings: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.ListingFetches.WithLabelValues("status").Inc()
		return nil, fmt.Sprintf("Practo responded with status %d.", resp.StatusCode)
	}

	clinics, err := extract(resp.Body, location)
	if err != nil {
		metrics.ListingFetches.WithLabelValues("error").Inc()
		return nil, fmt.Sprintf("Unable to load live Practo listings: %v", err)
	}
	if len(clinics) == 0 {
		metrics.ListingFetches.WithLabelValues("empty").Inc()
		return nil, "No listings could be parsed from Practo. Access may be blocked."
	}
	metrics.ListingFetches.WithLabelValues("ok").Inc()
	return clinics, ""
}

func extract(r io.Reader, location string) ([]Clinic, error) {
	if location == "" {
		location = "location"
	}
	var clinics []Clinic
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !containsMarker(line) {
			continue
		}
		name := strings.TrimSpace(line)
		if name == "" || len(name) >= maxNameLength {
			continue
		}
		clinics = append(clinics, Clinic{
			Name:      name,
			Specialty: "Skin Clinic",
			Clinic:    "Practo Listing",
			Location:  location,
		})
		if len(clinics) >= maxClinics {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return clinics, nil
}

func containsMarker(line string) bool {
	for _, m := range markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}
