package azure

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCredential struct {
	Token string
}

func (m *mockCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: m.Token, ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func TestCredentialClient_NoScopes(t *testing.T) {
	called := false
	client := NewCredentialClient(nil, logrus.New())
	client.NewCredential = func() (azcore.TokenCredential, error) {
		called = true
		return &mockCredential{}, nil
	}

	policies, err := client.AuthorizationPolicies()

	assert.NoError(t, err)
	assert.Empty(t, policies)
	assert.False(t, called)
}

func TestCredentialClient_WithScopes(t *testing.T) {
	client := NewCredentialClient([]string{"https://example.azure.net/.default"}, logrus.New())
	client.NewCredential = func() (azcore.TokenCredential, error) {
		return &mockCredential{Token: "abc"}, nil
	}

	policies, err := client.AuthorizationPolicies()

	require.NoError(t, err)
	assert.Len(t, policies, 1)
}

func TestCredentialClient_InvalidScope(t *testing.T) {
	client := NewCredentialClient([]string{"not a scope"}, logrus.New())

	_, err := client.AuthorizationPolicies()

	assert.ErrorContains(t, err, "invalid Azure scope")
}

func TestCredentialClient_CredentialError(t *testing.T) {
	client := NewCredentialClient([]string{"api://my-app/.default"}, logrus.New())
	client.NewCredential = func() (azcore.TokenCredential, error) {
		return nil, errors.New("no credential sources")
	}

	_, err := client.AuthorizationPolicies()

	assert.ErrorContains(t, err, "no credential sources")
}

func TestForwardSdkLogs(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	assert.NotPanics(t, func() { ForwardSdkLogs(logger) })

	logger.SetLevel(logrus.TraceLevel)
	assert.NotPanics(t, func() { ForwardSdkLogs(logger) })
	ForwardSdkLogs(logrus.New())
}
