package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	cb "github.com/rcastle4778/coinbase1"
	"github.com/rcastle4778/coinbase1/config"
)

// Client talks to the staking backend REST service. It does not retry
// failed calls; remote errors are propagated verbatim to the caller.
type Client struct {
	Url        string
	ApiKey     config.Secret
	limiter    *rate.Limiter
	httpClient *http.Client
}

// Error is a backend error response body.
type Error struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HttpStatus int    `json:"-"`
}

var _ error = &Error{}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

func NewClient(baseUrl string, apiKey config.Secret) (*Client, error) {
	if baseUrl == "" {
		return nil, fmt.Errorf("backend url required")
	}
	return &Client{
		Url:        strings.TrimSuffix(baseUrl, "/"),
		ApiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		httpClient: http.DefaultClient,
	}, nil
}

// SetRateLimit throttles outgoing requests. Unlimited by default.
func (cli *Client) SetRateLimit(limit rate.Limit, burst int) {
	cli.limiter = rate.NewLimiter(limit, burst)
}

func (cli *Client) Get(ctx context.Context, path string, response any) error {
	return cli.Send(ctx, "GET", path, nil, response)
}

func (cli *Client) Post(ctx context.Context, path string, requestBody any, response any) error {
	return cli.Send(ctx, "POST", path, requestBody, response)
}

func (cli *Client) Send(ctx context.Context, method string, path string, requestBody any, response any) error {
	if err := cli.limiter.Wait(ctx); err != nil {
		return err
	}
	path = strings.TrimPrefix(path, "/")
	url := fmt.Sprintf("%s/%s", cli.Url, path)
	var request *http.Request
	var err error
	if requestBody == nil {
		request, err = http.NewRequestWithContext(ctx, method, url, nil)
	} else {
		bz, _ := json.Marshal(requestBody)
		request, err = http.NewRequestWithContext(ctx, method, url, bytes.NewBuffer(bz))
		if err == nil {
			request.Header.Add("content-type", "application/json")
		}
	}
	if err != nil {
		return err
	}
	if apiKey := cli.ApiKey.LoadOrBlank(); apiKey != "" {
		request.Header.Add("authorization", "Bearer "+apiKey)
	}
	logrus.WithField("url", url).Debug(method)
	resp, err := cli.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("failed to %s: %v", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %v", err)
	}
	logrus.WithFields(logrus.Fields{
		"body":   string(body),
		"status": resp.StatusCode,
	}).Debug("response")

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated {
		if response != nil {
			if err := json.Unmarshal(body, response); err != nil {
				return fmt.Errorf("failed to unmarshal response: %v", err)
			}
		}
		return nil
	}
	errorResponse := &Error{HttpStatus: resp.StatusCode}
	if err := json.Unmarshal(body, errorResponse); err != nil || errorResponse.Message == "" {
		logrus.WithField("body", string(body)).Warn("unknown backend error")
		return &Error{
			Message:    fmt.Sprintf("unknown backend error (%d)", resp.StatusCode),
			HttpStatus: resp.StatusCode,
		}
	}
	return errorResponse
}

// BuildStakingOperation materializes a staking operation for an externally
// owned address. The caller is responsible for signing and broadcast.
func (cli *Client) BuildStakingOperation(ctx context.Context, req *BuildStakingOperationRequest) (*OperationSnapshot, error) {
	path := fmt.Sprintf("v1/networks/%s/addresses/%s/staking_operations",
		url.PathEscape(string(req.NetworkID)), url.PathEscape(req.AddressID))
	var snapshot OperationSnapshot
	err := cli.Post(ctx, path, req, &snapshot)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// CreateWalletStakingOperation materializes a staking operation for a
// custodially managed address.
func (cli *Client) CreateWalletStakingOperation(ctx context.Context, walletID string, req *BuildStakingOperationRequest) (*OperationSnapshot, error) {
	path := fmt.Sprintf("v1/wallets/%s/addresses/%s/staking_operations",
		url.PathEscape(walletID), url.PathEscape(req.AddressID))
	var snapshot OperationSnapshot
	err := cli.Post(ctx, path, req, &snapshot)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (cli *Client) GetStakingOperation(ctx context.Context, networkID cb.NetworkID, addressID string, operationID string) (*OperationSnapshot, error) {
	path := fmt.Sprintf("v1/networks/%s/addresses/%s/staking_operations/%s",
		url.PathEscape(string(networkID)), url.PathEscape(addressID), url.PathEscape(operationID))
	var snapshot OperationSnapshot
	err := cli.Get(ctx, path, &snapshot)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (cli *Client) GetWalletStakingOperation(ctx context.Context, walletID string, addressID string, operationID string) (*OperationSnapshot, error) {
	path := fmt.Sprintf("v1/wallets/%s/addresses/%s/staking_operations/%s",
		url.PathEscape(walletID), url.PathEscape(addressID), url.PathEscape(operationID))
	var snapshot OperationSnapshot
	err := cli.Get(ctx, path, &snapshot)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// BroadcastStakingOperation submits one signed transaction of a wallet
// staking operation and returns the updated snapshot.
func (cli *Client) BroadcastStakingOperation(ctx context.Context, walletID string, addressID string, operationID string, req *BroadcastStakingOperationRequest) (*OperationSnapshot, error) {
	path := fmt.Sprintf("v1/wallets/%s/addresses/%s/staking_operations/%s/broadcast",
		url.PathEscape(walletID), url.PathEscape(addressID), url.PathEscape(operationID))
	var snapshot OperationSnapshot
	err := cli.Post(ctx, path, req, &snapshot)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// GetStakingContext fetches all four staking balance categories for one
// (address, asset, options) tuple.
func (cli *Client) GetStakingContext(ctx context.Context, networkID cb.NetworkID, addressID string, req *GetStakingContextRequest) (*StakingContext, error) {
	path := fmt.Sprintf("v1/networks/%s/addresses/%s/staking_context",
		url.PathEscape(string(networkID)), url.PathEscape(addressID))
	var res getStakingContextResponse
	err := cli.Post(ctx, path, req, &res)
	if err != nil {
		return nil, err
	}
	return &res.Context, nil
}

// GetAsset resolves an asset from the backend registry by (network, asset id).
func (cli *Client) GetAsset(ctx context.Context, networkID cb.NetworkID, assetID cb.AssetID) (*Asset, error) {
	path := fmt.Sprintf("v1/networks/%s/assets/%s",
		url.PathEscape(string(networkID)), url.PathEscape(string(assetID)))
	var asset Asset
	err := cli.Get(ctx, path, &asset)
	if err != nil {
		return nil, err
	}
	return &asset, nil
}
