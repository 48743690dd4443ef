package auth

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// AzureProvider acquires tokens through the default Azure credential
// chain (environment, workload identity, managed identity, az CLI).
// The credential caches and refreshes tokens internally.
type AzureProvider struct {
	cred *azidentity.DefaultAzureCredential
}

func NewAzureProvider() (*AzureProvider, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("create Azure credential: %w", err)
	}
	return &AzureProvider{cred: cred}, nil
}

func (p *AzureProvider) GetToken(ctx context.Context, audience string) (string, error) {
	tok, err := p.cred.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{audience + "/.default"},
	})
	if err != nil {
		return "", fmt.Errorf("acquire token for %s: %w", audience, err)
	}
	return tok.Token, nil
}
