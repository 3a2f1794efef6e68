package secrets

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsAPI is the narrow slice of the Secrets Manager client used here.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// Credentials holds the upstream API keys. Loaded once at process start;
// rotation is not handled.
type Credentials struct {
	AlpacaKey    string `json:"alpaca_key"`
	AlpacaSecret string `json:"alpaca_secret"`
	PolygonKey   string `json:"polygon_key"`
}

// Load fetches and decodes the credentials secret.
func Load(ctx context.Context, client SecretsAPI, secretID string) (*Credentials, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return nil, fmt.Errorf("get secret %s: %w", secretID, err)
	}
	var creds Credentials
	if err := json.Unmarshal([]byte(aws.ToString(out.SecretString)), &creds); err != nil {
		return nil, fmt.Errorf("decode secret %s: %w", secretID, err)
	}
	if creds.AlpacaKey == "" || creds.AlpacaSecret == "" || creds.PolygonKey == "" {
		return nil, fmt.Errorf("secret %s is missing one or more API keys", secretID)
	}
	return &creds, nil
}
