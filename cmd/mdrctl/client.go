package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lzjever/fabric-mdr/internal/auth"
	"github.com/lzjever/fabric-mdr/internal/fabric"
)

// newFabricClient wires a Fabric client from the persistent flags.
func newFabricClient() (*fabric.Client, *zap.Logger, error) {
	log := newCLILogger()

	var tokens auth.TokenProvider
	if staticToken != "" {
		tokens = auth.Static(staticToken)
	} else {
		provider, err := auth.NewAzureProvider()
		if err != nil {
			return nil, nil, err
		}
		tokens = provider
	}
	return fabric.NewClient(fabricURL, audience, tokens, log), log, nil
}

func newCLILogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	lvl, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	log, _ := cfg.Build()
	return log
}

// Client is a thin client for the mdr-api job endpoints.
type Client struct {
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL}
}

func (c *Client) Get(path string, out interface{}) error {
	resp, err := http.Get(c.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return parseResponse(resp, out)
}

func (c *Client) Post(path string, out interface{}) error {
	resp, err := http.Post(c.baseURL+path, "application/json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return parseResponse(resp, out)
}

func parseResponse(resp *http.Response, out interface{}) error {
	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		var errResp struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		json.Unmarshal(b, &errResp)
		return fmt.Errorf("%s: %s", errResp.Code, errResp.Message)
	}
	if out != nil {
		return json.Unmarshal(b, out)
	}
	return nil
}
