package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/jsii-runtime-go"
)

// StorageResources holds the two S3 buckets: private conversation memory
// and the public static-website origin.
type StorageResources struct {
	MemoryBucket       awss3.IBucket
	MemoryBucketName   string
	FrontendBucket     awss3.IBucket
	FrontendBucketName string
}

// createStorageResources creates both buckets. They share no state.
func createStorageResources(resources *Resources) *StorageResources {
	cfg := resources.Config

	// Conversation memory: every public-access dimension closed, object
	// ownership enforced on the bucket owner.
	memoryBucketName := cfg.ResourceName("memory", resources.Account)
	memoryBucket := awss3.NewBucket(resources.Stack, jsii.String("MemoryBucket"), &awss3.BucketProps{
		BucketName:        jsii.String(memoryBucketName),
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		ObjectOwnership:   awss3.ObjectOwnership_BUCKET_OWNER_ENFORCED,
		RemovalPolicy:     awscdk.RemovalPolicy_DESTROY,
	})
	tagResource(memoryBucket)

	// Frontend website origin: access block opened and an allow-all read
	// policy attached. PublicReadAccess generates the bucket policy on the
	// bucket resource itself, so the policy can never land before the
	// access-block configuration exists.
	frontendBucketName := cfg.ResourceName("frontend", resources.Account)
	frontendBucket := awss3.NewBucket(resources.Stack, jsii.String("FrontendBucket"), &awss3.BucketProps{
		BucketName:           jsii.String(frontendBucketName),
		WebsiteIndexDocument: jsii.String(IndexDocument),
		WebsiteErrorDocument: jsii.String(ErrorDocument),
		PublicReadAccess:     jsii.Bool(true),
		BlockPublicAccess: awss3.NewBlockPublicAccess(&awss3.BlockPublicAccessOptions{
			BlockPublicAcls:       jsii.Bool(false),
			BlockPublicPolicy:     jsii.Bool(false),
			IgnorePublicAcls:      jsii.Bool(false),
			RestrictPublicBuckets: jsii.Bool(false),
		}),
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})
	tagResource(frontendBucket)

	return &StorageResources{
		MemoryBucket:       memoryBucket,
		MemoryBucketName:   memoryBucketName,
		FrontendBucket:     frontendBucket,
		FrontendBucketName: frontendBucketName,
	}
}
