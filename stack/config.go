package stack

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// projectNamePattern restricts project names to what S3 bucket naming can
// safely embed: lowercase letters, digits, hyphens.
var projectNamePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Config is the full configuration surface of the stack. Values come from
// CDK context (cdk.json or --context flags); everything except ProjectName
// has a default.
type Config struct {
	ProjectName           string
	Environment           string
	BedrockModelID        string
	LambdaTimeoutSeconds  float64
	APIThrottleBurstLimit float64
	APIThrottleRateLimit  float64
	UseCustomDomain       bool
	RootDomain            string
}

// ConfigFromContext reads the configuration surface from CDK context and
// validates it. It fails before any construct is created, so an invalid
// input can never cause partial provisioning.
func ConfigFromContext(node constructs.Node) (*Config, error) {
	cfg := &Config{
		ProjectName:           contextString(node, "project_name", ""),
		Environment:           contextString(node, "environment", "dev"),
		BedrockModelID:        contextString(node, "bedrock_model_id", DefaultBedrockModelID),
		LambdaTimeoutSeconds:  contextNumber(node, "lambda_timeout", DefaultLambdaTimeoutSeconds),
		APIThrottleBurstLimit: contextNumber(node, "api_throttle_burst_limit", DefaultAPIThrottleBurstLimit),
		APIThrottleRateLimit:  contextNumber(node, "api_throttle_rate_limit", DefaultAPIThrottleRateLimit),
		UseCustomDomain:       contextBool(node, "use_custom_domain", false),
		RootDomain:            contextString(node, "root_domain", ""),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects malformed input up front.
func (c *Config) Validate() error {
	if c.ProjectName == "" {
		return fmt.Errorf("project_name is required")
	}
	if !projectNamePattern.MatchString(c.ProjectName) {
		return fmt.Errorf("project_name %q must contain only lowercase letters, digits, and hyphens", c.ProjectName)
	}
	if !Environments[c.Environment] {
		return fmt.Errorf("environment %q is not supported, expected one of dev, test, prod", c.Environment)
	}
	if c.UseCustomDomain && c.RootDomain == "" {
		return fmt.Errorf("root_domain is required when use_custom_domain is enabled")
	}
	return nil
}

// Prefix is the deterministic name prefix shared by every resource.
func (c *Config) Prefix() string {
	return fmt.Sprintf("%s-%s", c.ProjectName, c.Environment)
}

// ResourceName composes a per-resource name. The account suffix keeps
// bucket names globally unique.
func (c *Config) ResourceName(role, account string) string {
	return fmt.Sprintf("%s-%s-%s", c.Prefix(), role, account)
}

func contextString(node constructs.Node, key, fallback string) string {
	raw := node.TryGetContext(jsii.String(key))
	if raw == nil {
		return fallback
	}
	if s, ok := raw.(string); ok {
		return s
	}
	return fallback
}

func contextNumber(node constructs.Node, key string, fallback float64) float64 {
	raw := node.TryGetContext(jsii.String(key))
	switch v := raw.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		// --context flags arrive as strings.
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return fallback
}

func contextBool(node constructs.Node, key string, fallback bool) bool {
	raw := node.TryGetContext(jsii.String(key))
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
