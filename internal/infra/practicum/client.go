package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"
)

// ErrRequestFailed marks transport errors, non-200 answers and undecodable bodies.
var ErrRequestFailed = errors.New("practicum API request failed")

// Client queries the homework statuses endpoint.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *logrus.Entry
}

// NewClient returns a Client. A nil httpClient means http.DefaultClient.
func NewClient(endpoint, token string, httpClient *http.Client, logger *logrus.Entry) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     httpClient,
		logger:   logger,
	}
}

// GetAPIAnswer requests every status change since fromDate and returns the decoded JSON body.
// Numbers are kept as json.Number.
func (c *Client) GetAPIAnswer(ctx context.Context, fromDate int64) (any, error) {
	params := url.Values{"from_date": {strconv.FormatInt(fromDate, 10)}}
	logCtx := c.logger.WithField("from_date", fromDate)
	logCtx.Debugf("Requesting %s", c.endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		logCtx.WithError(err).Error("Request to Practicum API failed")
		return nil, fmt.Errorf("%w: request with headers %s and params %v: %v", ErrRequestFailed, redactedHeaders, params, err)
	}
	defer resp.Body.Close()

	logCtx.WithField("status_code", resp.StatusCode).Debug("Practicum API answered")
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("%w: request with headers %s and params %v: status code %d", ErrRequestFailed, redactedHeaders, params, resp.StatusCode)
		logCtx.Warn(err.Error())
		return nil, err
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var body any
	if err := dec.Decode(&body); err != nil {
		logCtx.WithError(err).Warn("Practicum API returned invalid JSON")
		return nil, fmt.Errorf("%w: decode body: %v", ErrRequestFailed, err)
	}
	return body, nil
}

// The token never appears in errors because they are relayed to chat.
const redactedHeaders = "map[Authorization:OAuth ***]"
