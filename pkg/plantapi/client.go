// pkg/plantapi/client.go

package plantapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"gardenguru/pkg/apperr"
)

// quoteEscaper matches mime/multipart and also drops CR and LF so a
// client-supplied filename cannot break out of the part header.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"", "\r", "", "\n", "")

const (
	DefaultPerenualURL = "https://perenual.com/api"
	DefaultPlantNetURL = "https://my-api.plantnet.org"
)

// Client talks to Perenual (species and care data) and PlantNet (image
// identification). Either key may be empty; the matching calls then fail
// with a configuration error.
type Client struct {
	perenualKey  string
	plantNetKey  string
	project      string
	perenualBase string
	plantNetBase string
	httpc        *http.Client
}

func New(perenualKey, plantNetKey, project string, timeout time.Duration) *Client {
	if project == "" {
		project = "all"
	}
	return &Client{
		perenualKey:  perenualKey,
		plantNetKey:  plantNetKey,
		project:      project,
		perenualBase: DefaultPerenualURL,
		plantNetBase: DefaultPlantNetURL,
		httpc:        &http.Client{Timeout: timeout},
	}
}

// WithBaseURLs points the client at other hosts; empty values keep the default.
func (c *Client) WithBaseURLs(perenual, plantNet string) *Client {
	if perenual != "" {
		c.perenualBase = strings.TrimRight(perenual, "/")
	}
	if plantNet != "" {
		c.plantNetBase = strings.TrimRight(plantNet, "/")
	}
	return c
}

func (c *Client) CanIdentify() bool { return c.plantNetKey != "" }

func (c *Client) SearchSpecies(ctx context.Context, query string, page int) (*SpeciesPage, error) {
	if page < 1 {
		page = 1
	}
	var out SpeciesPage
	err := c.perenual(ctx, "/species-list", url.Values{"q": {query}, "page": {strconv.Itoa(page)}}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SpeciesDetails(ctx context.Context, id int) (*SpeciesDetails, error) {
	var out SpeciesDetails
	if err := c.perenual(ctx, fmt.Sprintf("/species/details/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) perenual(ctx context.Context, endpoint string, params url.Values, out any) error {
	if c.perenualKey == "" {
		return apperr.Configuration("perenual api key not configured")
	}
	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	q.Set("key", c.perenualKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.perenualBase+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return apperr.Upstream("build plant api request", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return apperr.Upstream("plant api request failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return apperr.Upstream(fmt.Sprintf("plant api request failed: %s", resp.Status), nil)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Parse("decode plant api response", err)
	}
	return nil
}

// Identify sends the photo to PlantNet and returns candidates ranked by
// probability. The top candidate is enriched with Perenual care data when
// a Perenual key is configured; enrichment failures are only logged.
func (c *Client) Identify(ctx context.Context, photo Photo) ([]Candidate, error) {
	if c.plantNetKey == "" {
		return nil, apperr.Configuration("plantnet api key not configured")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	name := photo.Filename
	if name == "" {
		name = "photo.jpg"
	}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename="%s"`, quoteEscaper.Replace(name)))
	ct := photo.ContentType
	if ct == "" {
		ct = "image/jpeg"
	}
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, apperr.Upstream("build identify request", err)
	}
	if _, err := part.Write(photo.Data); err != nil {
		return nil, apperr.Upstream("build identify request", err)
	}
	_ = mw.WriteField("organs", "auto")
	if err := mw.Close(); err != nil {
		return nil, apperr.Upstream("build identify request", err)
	}

	q := url.Values{"api-key": {c.plantNetKey}, "lang": {"en"}}
	endpoint := fmt.Sprintf("%s/v2/identify/%s?%s", c.plantNetBase, url.PathEscape(c.project), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, apperr.Upstream("build identify request", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, apperr.Upstream("plant identification failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, apperr.Upstream(fmt.Sprintf("plant identification failed: %s", resp.Status), nil)
	}

	var out struct {
		Results []struct {
			Score   float64 `json:"score"`
			Species struct {
				ScientificName string   `json:"scientificNameWithoutAuthor"`
				CommonNames    []string `json:"commonNames"`
				Family         struct {
					ScientificName string `json:"scientificNameWithoutAuthor"`
				} `json:"family"`
			} `json:"species"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, apperr.Parse("decode identification response", err)
	}

	cands := make([]Candidate, 0, len(out.Results))
	for _, r := range out.Results {
		cands = append(cands, Candidate{
			ScientificName: r.Species.ScientificName,
			CommonNames:    r.Species.CommonNames,
			Family:         r.Species.Family.ScientificName,
			Probability:    r.Score,
		})
	}
	if len(cands) > 0 && c.perenualKey != "" {
		if d, err := c.lookupDetails(ctx, cands[0].ScientificName); err != nil {
			log.Warn().Err(err).Str("species", cands[0].ScientificName).Msg("[plantapi] care lookup failed")
		} else if d != nil {
			cands[0].Details = d
			rec := Recommendations(d)
			cands[0].Care = &rec
		}
	}
	return cands, nil
}

func (c *Client) lookupDetails(ctx context.Context, scientificName string) (*SpeciesDetails, error) {
	if scientificName == "" {
		return nil, nil
	}
	page, err := c.SearchSpecies(ctx, scientificName, 1)
	if err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return nil, nil
	}
	return c.SpeciesDetails(ctx, page.Data[0].ID)
}
