// Package stack defines the CDK stack for the Bedrock-backed chat
// application: conversation storage, static frontend hosting, the chat
// handler Lambda, its HTTP API, the CloudFront distribution, and an
// optional custom domain.
package stack

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// ChatAppStackProps defines the properties for the chat application stack.
type ChatAppStackProps struct {
	awscdk.StackProps
	Config *Config
}

// ChatAppStack is the single CDK stack containing all resources.
type ChatAppStack struct {
	awscdk.Stack
	Account                string
	Region                 string
	MemoryBucketName       string
	FrontendBucketName     string
	APIEndpoint            string
	DistributionID         string
	DistributionDomainName string
	SiteURL                string
}

// Resources holds the common context shared across the create* functions.
type Resources struct {
	Stack   awscdk.Stack
	Config  *Config
	Account string
	Region  string
}

// NewChatAppStack creates the chat application stack. Resources are created
// in dependency order: storage, then the domain cluster (zone lookup and
// certificate), then the distribution, then the Lambda (whose environment
// reads the distribution's domain name), then the API. Alias records come
// last because they point at the distribution.
func NewChatAppStack(scope constructs.Construct, id string, props *ChatAppStackProps) *ChatAppStack {
	stack := awscdk.NewStack(scope, &id, &props.StackProps)

	resources := &Resources{
		Stack:   stack,
		Config:  props.Config,
		Account: *stack.Account(),
		Region:  *stack.Region(),
	}

	storage := createStorageResources(resources)
	domain := createDomainResources(resources)
	cdn := createCdnResources(resources, storage, domain)
	compute := createComputeResources(resources, storage, domain, cdn)
	api := createAPIResources(resources, compute)
	createAliasRecords(resources, domain, cdn)

	siteURL := fmt.Sprintf("https://%s", cdn.DomainName)
	if domain.Enabled {
		siteURL = fmt.Sprintf("https://%s", props.Config.RootDomain)
	}

	awscdk.NewCfnOutput(stack, jsii.String("APIEndpoint"), &awscdk.CfnOutputProps{
		Value:       jsii.String(api.Endpoint),
		Description: jsii.String("HTTP API endpoint for the chat handler"),
	})

	awscdk.NewCfnOutput(stack, jsii.String("SiteURL"), &awscdk.CfnOutputProps{
		Value:       jsii.String(siteURL),
		Description: jsii.String("Public URL of the frontend"),
	})

	awscdk.NewCfnOutput(stack, jsii.String("MemoryBucketName"), &awscdk.CfnOutputProps{
		Value:       jsii.String(storage.MemoryBucketName),
		Description: jsii.String("S3 bucket holding persisted conversation state"),
	})

	awscdk.NewCfnOutput(stack, jsii.String("FrontendBucketName"), &awscdk.CfnOutputProps{
		Value:       jsii.String(storage.FrontendBucketName),
		Description: jsii.String("S3 bucket serving the static frontend"),
	})

	awscdk.NewCfnOutput(stack, jsii.String("DistributionID"), &awscdk.CfnOutputProps{
		Value:       cdn.Distribution.DistributionId(),
		Description: jsii.String("CloudFront distribution ID for cache invalidations"),
	})

	awscdk.NewCfnOutput(stack, jsii.String("DistributionDomainName"), &awscdk.CfnOutputProps{
		Value:       jsii.String(cdn.DomainName),
		Description: jsii.String("CloudFront distribution domain name"),
	})

	return &ChatAppStack{
		Stack:                  stack,
		Account:                resources.Account,
		Region:                 resources.Region,
		MemoryBucketName:       storage.MemoryBucketName,
		FrontendBucketName:     storage.FrontendBucketName,
		APIEndpoint:            api.Endpoint,
		DistributionID:         *cdn.Distribution.DistributionId(),
		DistributionDomainName: cdn.DomainName,
		SiteURL:                siteURL,
	}
}

func tagResource(construct constructs.IConstruct) {
	awscdk.Tags_Of(construct).Add(jsii.String(DefaultResourceTagKey), jsii.String(DefaultResourceTagValue), nil)
}
