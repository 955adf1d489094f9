package azure

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	azlog "github.com/Azure/azure-sdk-for-go/sdk/azcore/log"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/sirupsen/logrus"
)

type ICredentialClient interface {
	AuthorizationPolicies() ([]policy.Policy, error)
}

type CredentialClient struct {
	Scopes        []string
	NewCredential func() (azcore.TokenCredential, error)
	Logger        *logrus.Logger
}

func NewCredentialClient(scopes []string, logger *logrus.Logger) *CredentialClient {
	return &CredentialClient{
		Scopes:        scopes,
		NewCredential: newDefaultCredential,
		Logger:        logger,
	}
}

func newDefaultCredential() (azcore.TokenCredential, error) {
	return azidentity.NewDefaultAzureCredential(nil)
}

// AuthorizationPolicies returns a Microsoft Entra ID bearer token policy for
// the configured scopes, or nothing when no scopes are configured.
func (credentialClient *CredentialClient) AuthorizationPolicies() ([]policy.Policy, error) {
	if len(credentialClient.Scopes) == 0 {
		return nil, nil
	}

	for _, scope := range credentialClient.Scopes {
		if err := validateScope(scope); err != nil {
			return nil, err
		}
	}

	cred, err := credentialClient.NewCredential()
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure credential: %w", err)
	}

	credentialClient.Logger.Infof("Requests will be authorized with tokens for %s", strings.Join(credentialClient.Scopes, ", "))
	return []policy.Policy{runtime.NewBearerTokenPolicy(cred, credentialClient.Scopes, nil)}, nil
}

func validateScope(scope string) error {
	parsed, err := url.Parse(scope)
	if err != nil || parsed.Scheme == "" || (parsed.Host == "" && parsed.Opaque == "") {
		return fmt.Errorf("invalid Azure scope %q, expected a resource URI such as https://management.azure.com/.default", scope)
	}
	return nil
}

// ForwardSdkLogs routes the SDK pipeline's request, response and retry events to logger at trace level.
func ForwardSdkLogs(logger *logrus.Logger) {
	if !logger.IsLevelEnabled(logrus.TraceLevel) {
		azlog.SetListener(nil)
		return
	}
	azlog.SetEvents(azlog.EventRequest, azlog.EventResponse, azlog.EventRetryPolicy)
	azlog.SetListener(func(event azlog.Event, message string) {
		logger.Tracef("[%s] %s", event, message)
	})
}
