package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/common"
)

var errEmptyAccessToken = errors.New("refresh response carries no access token")

// refreshTokens exchanges the stored refresh token for a new pair, persists
// it, and returns the new access token. The old refresh token is kept when
// the server does not rotate it.
func (c *Client) refreshTokens(ctx context.Context) (string, error) {
	old, err := c.tokens.Tokens(ctx)
	if err != nil {
		return "", err
	}
	if old.Refresh == "" {
		return "", ErrNoRefreshToken
	}

	payload, err := json.Marshal(models.RefreshRequest{Refresh: old.Refresh})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(RefreshPath, nil), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, c.requestID())

	resp, err := c.refresh.Do(req)
	if err != nil {
		return "", c.transportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", c.transportError(ctx, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", decodeError(resp.StatusCode, body)
	}

	var rr models.RefreshResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return "", fmt.Errorf("decode refresh response: %w", err)
	}
	if rr.Access == "" {
		return "", errEmptyAccessToken
	}

	fresh := models.Tokens{Access: rr.Access, Refresh: rr.Refresh}
	if fresh.Refresh == "" {
		fresh.Refresh = old.Refresh
	}
	if err := c.tokens.SaveTokens(ctx, fresh); err != nil {
		return "", fmt.Errorf("persist refreshed tokens: %w", err)
	}

	c.log.Info(ctx, "access token refreshed", "rotated", rr.Refresh != "")
	return fresh.Access, nil
}
