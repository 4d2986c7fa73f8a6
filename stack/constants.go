package stack

const (
	// DefaultResourceTagKey and DefaultResourceTagValue mark every resource
	// created by this stack so cost and cleanup tooling can find them.
	DefaultResourceTagKey   = "Project"
	DefaultResourceTagValue = "chatapp"

	// DefaultBedrockModelID is used when no bedrock_model_id context value
	// is supplied.
	DefaultBedrockModelID = "anthropic.claude-3-haiku-20240307-v1:0"

	DefaultLambdaTimeoutSeconds  = 60
	DefaultAPIThrottleBurstLimit = 10
	DefaultAPIThrottleRateLimit  = 5

	// ChatRoutePath and HealthRoutePath are the two non-root routes exposed
	// by the HTTP API. The Lambda handler owns dispatch beyond that.
	ChatRoutePath   = "/chat"
	HealthRoutePath = "/health"

	// LambdaArtifactRelPath is where the packaging step drops the pre-built
	// handler archive, relative to this package's directory. The archive's
	// content hash drives redeploys.
	LambdaArtifactRelPath = "../lambda/function.zip"

	LambdaHandler = "app.lambda_handler"

	IndexDocument = "index.html"
	ErrorDocument = "index.html"
)

// Environments enumerates the deployable environment names, in the spirit of
// a stage allow-list: anything else is rejected before synthesis.
var Environments = map[string]bool{
	"dev":  true,
	"test": true,
	"prod": true,
}
