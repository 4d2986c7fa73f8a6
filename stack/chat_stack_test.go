package stack

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccount = "123456789012"
	testRegion  = "us-east-1"

	// Pre-seeded hosted-zone lookup result so tests never call AWS.
	testZoneContextKey = "hosted-zone:account=123456789012:domainName=example.com:region=us-east-1"
	testZoneID         = "Z1PA6795UKMFR9"
)

func synthStack(t *testing.T, ctx map[string]interface{}) (*ChatAppStack, assertions.Template) {
	t.Helper()

	app := awscdk.NewApp(&awscdk.AppProps{Context: &ctx})
	cfg, err := ConfigFromContext(app.Node())
	require.NoError(t, err)

	s := NewChatAppStack(app, "TestStack", &ChatAppStackProps{
		StackProps: awscdk.StackProps{
			Env: &awscdk.Environment{
				Account: jsii.String(testAccount),
				Region:  jsii.String(testRegion),
			},
		},
		Config: cfg,
	})
	return s, assertions.Template_FromStack(s.Stack, nil)
}

func baseContext() map[string]interface{} {
	return map[string]interface{}{
		"project_name": "chatapp",
		"environment":  "dev",
	}
}

func TestStackWithoutCustomDomain(t *testing.T) {
	s, template := synthStack(t, baseContext())

	template.ResourceCountIs(jsii.String("AWS::S3::Bucket"), jsii.Number(2))
	template.ResourceCountIs(jsii.String("AWS::Lambda::Function"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::ApiGatewayV2::Api"), jsii.Number(1))
	template.ResourceCountIs(jsii.String("AWS::ApiGatewayV2::Route"), jsii.Number(3))
	template.ResourceCountIs(jsii.String("AWS::CloudFront::Distribution"), jsii.Number(1))

	// The domain cluster must not be planned at all.
	template.ResourceCountIs(jsii.String("AWS::CertificateManager::Certificate"), jsii.Number(0))
	template.ResourceCountIs(jsii.String("AWS::Route53::RecordSet"), jsii.Number(0))

	// No aliases, shared default certificate.
	template.HasResourceProperties(jsii.String("AWS::CloudFront::Distribution"), map[string]interface{}{
		"DistributionConfig": assertions.Match_ObjectLike(&map[string]interface{}{
			"Aliases":           assertions.Match_Absent(),
			"ViewerCertificate": assertions.Match_Absent(),
			"DefaultRootObject": "index.html",
		}),
	})

	assert.Equal(t, "chatapp-dev-memory-"+testAccount, s.MemoryBucketName)
	assert.Equal(t, "chatapp-dev-frontend-"+testAccount, s.FrontendBucketName)
}

func TestMemoryBucketLockedDown(t *testing.T) {
	_, template := synthStack(t, baseContext())

	template.HasResourceProperties(jsii.String("AWS::S3::Bucket"), map[string]interface{}{
		"BucketName": "chatapp-dev-memory-" + testAccount,
		"PublicAccessBlockConfiguration": map[string]interface{}{
			"BlockPublicAcls":       true,
			"BlockPublicPolicy":     true,
			"IgnorePublicAcls":      true,
			"RestrictPublicBuckets": true,
		},
		"OwnershipControls": map[string]interface{}{
			"Rules": []interface{}{
				map[string]interface{}{"ObjectOwnership": "BucketOwnerEnforced"},
			},
		},
	})
}

func TestFrontendBucketServesWebsite(t *testing.T) {
	_, template := synthStack(t, baseContext())

	template.HasResourceProperties(jsii.String("AWS::S3::Bucket"), map[string]interface{}{
		"BucketName": "chatapp-dev-frontend-" + testAccount,
		"WebsiteConfiguration": map[string]interface{}{
			"IndexDocument": "index.html",
			"ErrorDocument": "index.html",
		},
		"PublicAccessBlockConfiguration": map[string]interface{}{
			"BlockPublicAcls":       false,
			"BlockPublicPolicy":     false,
			"IgnorePublicAcls":      false,
			"RestrictPublicBuckets": false,
		},
	})

	// The public-read policy is attached to the same bucket, which carries
	// the access-block settings, so ordering is inherent.
	template.ResourceCountIs(jsii.String("AWS::S3::BucketPolicy"), jsii.Number(1))
	template.HasResourceProperties(jsii.String("AWS::S3::BucketPolicy"), map[string]interface{}{
		"PolicyDocument": map[string]interface{}{
			"Statement": assertions.Match_ArrayWith(&[]interface{}{
				assertions.Match_ObjectLike(&map[string]interface{}{
					"Action": "s3:GetObject",
					"Effect": "Allow",
				}),
			}),
		},
	})
}

func TestChatHandlerConfiguration(t *testing.T) {
	_, template := synthStack(t, baseContext())

	template.HasResourceProperties(jsii.String("AWS::Lambda::Function"), map[string]interface{}{
		"FunctionName": "chatapp-dev-chat-handler",
		"Handler":      "app.lambda_handler",
		"Runtime":      "python3.12",
		"Timeout":      60,
		"Environment": map[string]interface{}{
			"Variables": assertions.Match_ObjectLike(&map[string]interface{}{
				"MEMORY_BUCKET":    "chatapp-dev-memory-" + testAccount,
				"USE_S3_MEMORY":    "true",
				"BEDROCK_MODEL_ID": DefaultBedrockModelID,
				"CORS_ORIGIN":      assertions.Match_AnyValue(),
			}),
		},
	})

	// Only the API may invoke the handler.
	template.HasResourceProperties(jsii.String("AWS::Lambda::Permission"), map[string]interface{}{
		"Action":    "lambda:InvokeFunction",
		"Principal": "apigateway.amazonaws.com",
	})
}

func TestAPIRoutesAndThrottling(t *testing.T) {
	_, template := synthStack(t, baseContext())

	template.HasResourceProperties(jsii.String("AWS::ApiGatewayV2::Api"), map[string]interface{}{
		"Name":         "chatapp-dev-api",
		"ProtocolType": "HTTP",
	})

	for _, routeKey := range []string{"GET /", "POST /chat", "GET /health"} {
		template.HasResourceProperties(jsii.String("AWS::ApiGatewayV2::Route"), map[string]interface{}{
			"RouteKey": routeKey,
		})
	}

	template.HasResourceProperties(jsii.String("AWS::ApiGatewayV2::Stage"), map[string]interface{}{
		"StageName":  "$default",
		"AutoDeploy": true,
		"DefaultRouteSettings": map[string]interface{}{
			"ThrottlingBurstLimit": 10,
			"ThrottlingRateLimit":  5,
		},
	})
}

func TestDistributionOriginUsesWebsiteEndpoint(t *testing.T) {
	_, template := synthStack(t, baseContext())

	template.HasResourceProperties(jsii.String("AWS::CloudFront::Distribution"), map[string]interface{}{
		"DistributionConfig": assertions.Match_ObjectLike(&map[string]interface{}{
			"Origins": assertions.Match_ArrayWith(&[]interface{}{
				assertions.Match_ObjectLike(&map[string]interface{}{
					"CustomOriginConfig": assertions.Match_ObjectLike(&map[string]interface{}{
						"OriginProtocolPolicy": "http-only",
					}),
				}),
			}),
			"DefaultCacheBehavior": assertions.Match_ObjectLike(&map[string]interface{}{
				"ViewerProtocolPolicy": "redirect-to-https",
			}),
			"CustomErrorResponses": assertions.Match_ArrayWith(&[]interface{}{
				assertions.Match_ObjectLike(&map[string]interface{}{
					"ErrorCode":        404,
					"ResponseCode":     200,
					"ResponsePagePath": "/index.html",
				}),
			}),
		}),
	})
}

func domainContext() map[string]interface{} {
	ctx := baseContext()
	ctx["use_custom_domain"] = true
	ctx["root_domain"] = "example.com"
	ctx[testZoneContextKey] = map[string]interface{}{
		"Id":   "/hostedzone/" + testZoneID,
		"Name": "example.com.",
	}
	return ctx
}

func TestStackWithCustomDomain(t *testing.T) {
	s, template := synthStack(t, domainContext())

	template.ResourceCountIs(jsii.String("AWS::CertificateManager::Certificate"), jsii.Number(1))
	template.HasResourceProperties(jsii.String("AWS::CertificateManager::Certificate"), map[string]interface{}{
		"DomainName":              "example.com",
		"SubjectAlternativeNames": []interface{}{"www.example.com"},
		"DomainValidationOptions": assertions.Match_ArrayWith(&[]interface{}{
			assertions.Match_ObjectLike(&map[string]interface{}{
				"DomainName":   "example.com",
				"HostedZoneId": testZoneID,
			}),
			assertions.Match_ObjectLike(&map[string]interface{}{
				"DomainName":   "www.example.com",
				"HostedZoneId": testZoneID,
			}),
		}),
	})

	template.HasResourceProperties(jsii.String("AWS::CloudFront::Distribution"), map[string]interface{}{
		"DistributionConfig": assertions.Match_ObjectLike(&map[string]interface{}{
			"Aliases": []interface{}{"example.com", "www.example.com"},
			"ViewerCertificate": assertions.Match_ObjectLike(&map[string]interface{}{
				"AcmCertificateArn": assertions.Match_AnyValue(),
				"SslSupportMethod":  "sni-only",
			}),
		}),
	})

	// Apex and www, A and AAAA each, all aliased to the distribution.
	template.ResourceCountIs(jsii.String("AWS::Route53::RecordSet"), jsii.Number(4))
	for _, rec := range []struct{ name, typ string }{
		{"example.com.", "A"},
		{"example.com.", "AAAA"},
		{"www.example.com.", "A"},
		{"www.example.com.", "AAAA"},
	} {
		template.HasResourceProperties(jsii.String("AWS::Route53::RecordSet"), map[string]interface{}{
			"Name":        rec.name,
			"Type":        rec.typ,
			"AliasTarget": assertions.Match_AnyValue(),
		})
	}

	// The handler's CORS origin follows the custom domain.
	template.HasResourceProperties(jsii.String("AWS::Lambda::Function"), map[string]interface{}{
		"Environment": map[string]interface{}{
			"Variables": assertions.Match_ObjectLike(&map[string]interface{}{
				"CORS_ORIGIN": "https://example.com",
			}),
		},
	})

	assert.Equal(t, "https://example.com", s.SiteURL)
}

func TestThrottleKnobsFlowThrough(t *testing.T) {
	ctx := baseContext()
	ctx["api_throttle_burst_limit"] = float64(25)
	ctx["api_throttle_rate_limit"] = float64(12)

	_, template := synthStack(t, ctx)

	template.HasResourceProperties(jsii.String("AWS::ApiGatewayV2::Stage"), map[string]interface{}{
		"DefaultRouteSettings": map[string]interface{}{
			"ThrottlingBurstLimit": 25,
			"ThrottlingRateLimit":  12,
		},
	})
}
