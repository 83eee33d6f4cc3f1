// Package auth
package auth

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/half-nothing/fsd-client/internal/interfaces/fsd"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type tokenRequest struct {
	Cid      string `json:"cid"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	ErrorMsg string `json:"error_msg"`
}

// TokenFetcher 向令牌端点换取登录用的一次性令牌
type TokenFetcher struct {
	Url    string
	Client *http.Client
}

func NewTokenFetcher(url string) *TokenFetcher {
	return &TokenFetcher{Url: url, Client: &http.Client{Timeout: 10 * time.Second}}
}

func (fetcher *TokenFetcher) Fetch(ctx context.Context, cid, password string) (string, error) {
	body, err := json.Marshal(&tokenRequest{Cid: cid, Password: password})
	if err != nil {
		return "", err
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, fetcher.Url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := fetcher.Client.Do(request)
	if err != nil {
		return "", fmt.Errorf("auth token endpoint: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(response.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("auth token endpoint: %w", err)
	}
	result := &tokenResponse{}
	if err := json.Unmarshal(data, result); err != nil {
		return "", fmt.Errorf("auth token endpoint returned %s: %w", response.Status, err)
	}
	if !result.Success {
		message := result.ErrorMsg
		if message == "" {
			message = response.Status
		}
		return "", fmt.Errorf("auth token endpoint: %s: %w", message, fsd.ErrAuthTokenRejected)
	}
	return result.Token, nil
}
