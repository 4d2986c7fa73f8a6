package stack

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigatewayv2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsapigatewayv2integrations"
	"github.com/aws/jsii-runtime-go"
)

// APIResources holds the HTTP API fronting the chat handler.
type APIResources struct {
	HTTPApi  awsapigatewayv2.HttpApi
	Endpoint string
}

// createAPIResources exposes exactly three unauthenticated routes, all
// proxying to the one Lambda; method and path dispatch beyond that is the
// handler's job. The Lambda integration emits an invoke permission scoped
// to this API instance only.
func createAPIResources(resources *Resources, compute *ComputeResources) *APIResources {
	cfg := resources.Config

	api := awsapigatewayv2.NewHttpApi(resources.Stack, jsii.String("ChatAPI"), &awsapigatewayv2.HttpApiProps{
		ApiName:            jsii.String(fmt.Sprintf("%s-api", cfg.Prefix())),
		Description:        jsii.String("HTTP API for the chat handler"),
		CreateDefaultStage: jsii.Bool(false),
		CorsPreflight: &awsapigatewayv2.CorsPreflightOptions{
			AllowOrigins: &[]*string{jsii.String(compute.CORSOrigin)},
			AllowMethods: &[]awsapigatewayv2.CorsHttpMethod{
				awsapigatewayv2.CorsHttpMethod_GET,
				awsapigatewayv2.CorsHttpMethod_POST,
			},
			AllowHeaders: &[]*string{jsii.String("Content-Type")},
		},
	})
	tagResource(api)

	integration := awsapigatewayv2integrations.NewHttpLambdaIntegration(
		jsii.String("ChatHandlerIntegration"), compute.Handler,
		&awsapigatewayv2integrations.HttpLambdaIntegrationProps{})

	api.AddRoutes(&awsapigatewayv2.AddRoutesOptions{
		Path:        jsii.String("/"),
		Methods:     &[]awsapigatewayv2.HttpMethod{awsapigatewayv2.HttpMethod_GET},
		Integration: integration,
	})
	api.AddRoutes(&awsapigatewayv2.AddRoutesOptions{
		Path:        jsii.String(ChatRoutePath),
		Methods:     &[]awsapigatewayv2.HttpMethod{awsapigatewayv2.HttpMethod_POST},
		Integration: integration,
	})
	api.AddRoutes(&awsapigatewayv2.AddRoutesOptions{
		Path:        jsii.String(HealthRoutePath),
		Methods:     &[]awsapigatewayv2.HttpMethod{awsapigatewayv2.HttpMethod_GET},
		Integration: integration,
	})

	// Uniform throttling across all routes of the auto-deployed stage.
	api.AddStage(jsii.String("DefaultStage"), &awsapigatewayv2.HttpStageOptions{
		StageName:  jsii.String("$default"),
		AutoDeploy: jsii.Bool(true),
		Throttle: &awsapigatewayv2.ThrottleSettings{
			BurstLimit: jsii.Number(cfg.APIThrottleBurstLimit),
			RateLimit:  jsii.Number(cfg.APIThrottleRateLimit),
		},
	})

	return &APIResources{
		HTTPApi:  api,
		Endpoint: *api.ApiEndpoint(),
	}
}
