package stack

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/jsii-runtime-go"
)

// ComputeResources holds the chat handler Lambda and its supporting
// resources.
type ComputeResources struct {
	Handler    awslambda.IFunction
	Role       awsiam.IRole
	LogGroup   awslogs.ILogGroup
	CORSOrigin string
}

// createComputeResources deploys the chat handler from the pre-built
// artifact. The asset's content hash drives redeploys: an unchanged archive
// produces an unchanged hash and no deployment. The CORS origin is the
// custom domain when that feature is on, otherwise the distribution's
// generated domain name (the function depends on the distribution's
// attribute, never the other way around).
func createComputeResources(resources *Resources, storage *StorageResources, domain *DomainResources, cdn *CdnResources) *ComputeResources {
	cfg := resources.Config
	functionName := fmt.Sprintf("%s-chat-handler", cfg.Prefix())

	logGroup := awslogs.NewLogGroup(resources.Stack, jsii.String("ChatHandlerLogGroup"), &awslogs.LogGroupProps{
		LogGroupName:  jsii.String(fmt.Sprintf("/aws/lambda/%s", functionName)),
		Retention:     awslogs.RetentionDays_ONE_MONTH,
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})
	tagResource(logGroup)

	role := awsiam.NewRole(resources.Stack, jsii.String("ChatHandlerRole"), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("lambda.amazonaws.com"), nil),
	})
	role.AddManagedPolicy(awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("service-role/AWSLambdaBasicExecutionRole")))
	// Full-access grants to the model service and storage, matching the
	// handler's runtime contract.
	role.AddManagedPolicy(awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("AmazonBedrockFullAccess")))
	role.AddManagedPolicy(awsiam.ManagedPolicy_FromAwsManagedPolicyName(jsii.String("AmazonS3FullAccess")))
	role.ApplyRemovalPolicy(awscdk.RemovalPolicy_DESTROY)
	tagResource(role)

	corsOrigin := fmt.Sprintf("https://%s", cdn.DomainName)
	if domain.Enabled {
		corsOrigin = fmt.Sprintf("https://%s", cfg.RootDomain)
	}

	artifactPath := filepath.Join(getThisFileDir(), LambdaArtifactRelPath)

	handler := awslambda.NewFunction(resources.Stack, jsii.String("ChatHandler"), &awslambda.FunctionProps{
		FunctionName: jsii.String(functionName),
		Description:  jsii.String("Chat request handler backed by Amazon Bedrock"),
		Runtime:      awslambda.Runtime_PYTHON_3_12(),
		Handler:      jsii.String(LambdaHandler),
		Code:         awslambda.Code_FromAsset(jsii.String(artifactPath), nil),
		Timeout:      awscdk.Duration_Seconds(jsii.Number(cfg.LambdaTimeoutSeconds)),
		Role:         role,
		LogGroup:     logGroup,
		Environment: &map[string]*string{
			"CORS_ORIGIN":      jsii.String(corsOrigin),
			"MEMORY_BUCKET":    jsii.String(storage.MemoryBucketName),
			"USE_S3_MEMORY":    jsii.String("true"),
			"BEDROCK_MODEL_ID": jsii.String(cfg.BedrockModelID),
		},
	})
	tagResource(handler)

	return &ComputeResources{
		Handler:    handler,
		Role:       role,
		LogGroup:   logGroup,
		CORSOrigin: corsOrigin,
	}
}

func getThisFileDir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("unable to get current file path")
	}
	return filepath.Dir(filename)
}
