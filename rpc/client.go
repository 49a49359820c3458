package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/symbol-commons/symbolmap/address"
	"github.com/symbol-commons/symbolmap/network"
	"github.com/symbol-commons/symbolmap/types"
	"go.uber.org/zap"
)

// Transaction groups of the node REST API
const (
	GroupConfirmed   = "confirmed"
	GroupUnconfirmed = "unconfirmed"
	GroupPartial     = "partial"
)

var ErrNotFound = errors.New("resource not found")

// Client talks to the REST gateway of a node
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new node REST client
func NewClient(endpoint string, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid node endpoint %q", endpoint)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}, nil
}

// GetTransaction fetches one transaction by hash or id
func (c *Client) GetTransaction(ctx context.Context, group, hashOrID string) (*types.Record, error) {
	if err := checkGroup(group); err != nil {
		return nil, err
	}

	var rec types.Record
	if err := c.get(ctx, fmt.Sprintf("/transactions/%s/%s", group, url.PathEscape(hashOrID)), nil, &rec); err != nil {
		return nil, fmt.Errorf("fetching transaction %s: %w", hashOrID, err)
	}
	return &rec, nil
}

// GetTransactions fetches one page of transactions
func (c *Client) GetTransactions(ctx context.Context, q types.TransactionQuery) (*types.Page, error) {
	group := q.Group
	if group == "" {
		group = GroupConfirmed
	}
	if err := checkGroup(group); err != nil {
		return nil, err
	}

	query := url.Values{}
	if q.Address != "" {
		query.Set("address", strings.ToUpper(strings.ReplaceAll(q.Address, "-", "")))
	}
	if q.PageNumber > 0 {
		query.Set("pageNumber", strconv.Itoa(q.PageNumber))
	}
	if q.PageSize > 0 {
		query.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.Embedded {
		query.Set("embedded", "true")
	}
	query.Set("order", "desc")

	var page types.Page
	if err := c.get(ctx, "/transactions/"+group, query, &page); err != nil {
		return nil, fmt.Errorf("fetching transactions: %w", err)
	}
	return &page, nil
}

// GetFeeMultipliers fetches the fee multiplier statistics of recent blocks
func (c *Client) GetFeeMultipliers(ctx context.Context) (*types.FeeMultipliers, error) {
	var fees types.FeeMultipliers
	if err := c.get(ctx, "/network/fees/transaction", nil, &fees); err != nil {
		return nil, fmt.Errorf("fetching fee multipliers: %w", err)
	}
	return &fees, nil
}

// GetNetworkParameters completes base with the properties the node reports.
// Values the node does not report are kept from base.
func (c *Client) GetNetworkParameters(ctx context.Context, base network.Parameters) (network.Parameters, error) {
	var props types.NetworkProperties
	if err := c.get(ctx, "/network/properties", nil, &props); err != nil {
		return base, fmt.Errorf("fetching network properties: %w", err)
	}

	params := base
	switch props.Network.Identifier {
	case "mainnet":
		params.Type = address.MainNet
	case "testnet":
		params.Type = address.TestNet
	}
	if v := props.Network.EpochAdjustment; v != "" {
		epoch, err := strconv.ParseInt(strings.TrimSuffix(v, "s"), 10, 64)
		if err != nil {
			return base, fmt.Errorf("parsing epoch adjustment %q: %w", v, err)
		}
		params.EpochAdjustment = epoch
	}
	if v := props.Network.GenerationHashSeed; v != "" {
		params.GenerationHash = strings.ToUpper(v)
	}
	if v := props.Chain.CurrencyMosaicID; v != "" {
		id, err := address.NormalizeID(propertyID(v))
		if err != nil {
			return base, fmt.Errorf("parsing currency mosaic id %q: %w", v, err)
		}
		params.CurrencyMosaicID = id
	}
	params.NodeURL = c.endpoint

	return params, params.Validate()
}

// GetNamespace fetches a namespace and its alias
func (c *Client) GetNamespace(ctx context.Context, namespaceID string) (*types.NamespaceInfo, error) {
	var info types.NamespaceInfo
	if err := c.get(ctx, "/namespaces/"+namespaceID, nil, &info); err != nil {
		return nil, fmt.Errorf("fetching namespace %s: %w", namespaceID, err)
	}
	return &info, nil
}

// GetMosaics fetches the definitions of many mosaics in one request
func (c *Client) GetMosaics(ctx context.Context, mosaicIDs []string) ([]types.MosaicInfo, error) {
	var mosaics []types.MosaicInfo
	if err := c.post(ctx, "/mosaics", map[string][]string{"mosaicIds": mosaicIDs}, &mosaics); err != nil {
		return nil, fmt.Errorf("fetching mosaics: %w", err)
	}
	return mosaics, nil
}

// GetMosaicNames fetches the namespace names linked to many mosaics in one request
func (c *Client) GetMosaicNames(ctx context.Context, mosaicIDs []string) ([]types.MosaicNames, error) {
	var resp struct {
		MosaicNames []types.MosaicNames `json:"mosaicNames"`
	}
	if err := c.post(ctx, "/namespaces/mosaic/names", map[string][]string{"mosaicIds": mosaicIDs}, &resp); err != nil {
		return nil, fmt.Errorf("fetching mosaic names: %w", err)
	}
	return resp.MosaicNames, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := c.endpoint + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	startTime := time.Now()
	defer func() {
		c.logger.Debug("node request completed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Duration("duration", time.Since(startTime)))
	}()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var nodeErr types.NodeError
		_ = json.Unmarshal(body, &nodeErr)
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, nodeErr.Message)
		}
		if nodeErr.IsError() {
			return fmt.Errorf("node error %d: %s: %s", resp.StatusCode, nodeErr.Code, nodeErr.Message)
		}
		return fmt.Errorf("node error %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func checkGroup(group string) error {
	switch group {
	case GroupConfirmed, GroupUnconfirmed, GroupPartial:
		return nil
	}
	return fmt.Errorf("unknown transaction group %q", group)
}

// propertyID strips the 0x prefix and digit separators of ids in /network/properties
func propertyID(v string) string {
	v = strings.TrimPrefix(strings.TrimPrefix(v, "0x"), "0X")
	return strings.ReplaceAll(v, "'", "")
}
