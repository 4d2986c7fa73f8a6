package stack

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/jsii-runtime-go"
)

// CdnResources holds the CloudFront distribution fronting the frontend
// bucket's website endpoint.
type CdnResources struct {
	Distribution awscloudfront.Distribution
	DomainName   string
}

// createCdnResources fronts the website endpoint. Website endpoints only
// speak HTTP, so CDN-to-origin traffic stays unencrypted while viewers are
// redirected to HTTPS. Not-found responses are rewritten to the entry
// document so client-side routing works.
func createCdnResources(resources *Resources, storage *StorageResources, domain *DomainResources) *CdnResources {
	cfg := resources.Config

	props := &awscloudfront.DistributionProps{
		DefaultBehavior: &awscloudfront.BehaviorOptions{
			Origin:               awscloudfrontorigins.NewS3StaticWebsiteOrigin(storage.FrontendBucket, &awscloudfrontorigins.S3StaticWebsiteOriginProps{}),
			ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
			AllowedMethods:       awscloudfront.AllowedMethods_ALLOW_ALL(),
			CachedMethods:        awscloudfront.CachedMethods_CACHE_GET_HEAD(),
			CachePolicy:          awscloudfront.CachePolicy_CACHING_OPTIMIZED(),
			Compress:             jsii.Bool(true),
		},
		DefaultRootObject: jsii.String(IndexDocument),
		ErrorResponses: &[]*awscloudfront.ErrorResponse{
			{
				HttpStatus:         jsii.Number(404),
				ResponseHttpStatus: jsii.Number(200),
				ResponsePagePath:   jsii.String("/" + IndexDocument),
				Ttl:                awscdk.Duration_Minutes(jsii.Number(5)),
			},
		},
		Comment:    jsii.String(fmt.Sprintf("%s frontend distribution", cfg.Prefix())),
		EnableIpv6: jsii.Bool(true),
		PriceClass: awscloudfront.PriceClass_PRICE_CLASS_100,
	}

	// With the domain feature off the distribution carries no aliases and
	// serves the shared default certificate.
	if domain.Enabled {
		props.DomainNames = &[]*string{
			jsii.String(cfg.RootDomain),
			jsii.String(fmt.Sprintf("www.%s", cfg.RootDomain)),
		}
		props.Certificate = domain.Certificate
	}

	distribution := awscloudfront.NewDistribution(resources.Stack, jsii.String("FrontendDistribution"), props)
	tagResource(distribution)

	return &CdnResources{
		Distribution: distribution,
		DomainName:   *distribution.DistributionDomainName(),
	}
}
