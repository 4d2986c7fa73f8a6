package stack

import (
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53targets"
	"github.com/aws/jsii-runtime-go"
)

// DomainResources holds the optional custom-domain cluster. When the
// feature is off, Enabled is false and the references are nil; callers must
// check the flag rather than index into anything.
type DomainResources struct {
	Enabled     bool
	Zone        awsroute53.IHostedZone
	Certificate awscertificatemanager.ICertificate
}

// createDomainResources looks up the pre-existing hosted zone (this stack
// never creates zones) and requests a certificate for the apex and www
// names. DNS validation records are materialized in the zone and awaited by
// the engine before the certificate resource completes. CloudFront only
// accepts certificates issued in us-east-1, so custom-domain deployments
// must target that region.
func createDomainResources(resources *Resources) *DomainResources {
	cfg := resources.Config
	if !cfg.UseCustomDomain {
		return &DomainResources{}
	}

	zone := awsroute53.HostedZone_FromLookup(resources.Stack, jsii.String("HostedZone"), &awsroute53.HostedZoneProviderProps{
		DomainName: jsii.String(cfg.RootDomain),
	})

	certificate := awscertificatemanager.NewCertificate(resources.Stack, jsii.String("SiteCertificate"), &awscertificatemanager.CertificateProps{
		DomainName: jsii.String(cfg.RootDomain),
		SubjectAlternativeNames: &[]*string{
			jsii.String("www." + cfg.RootDomain),
		},
		Validation: awscertificatemanager.CertificateValidation_FromDns(zone),
	})
	tagResource(certificate)

	return &DomainResources{
		Enabled:     true,
		Zone:        zone,
		Certificate: certificate,
	}
}

// createAliasRecords points apex and www at the distribution, A and AAAA
// each. Alias targets to CloudFront leave target-health evaluation off.
func createAliasRecords(resources *Resources, domain *DomainResources, cdn *CdnResources) {
	if !domain.Enabled {
		return
	}

	target := awsroute53.RecordTarget_FromAlias(awsroute53targets.NewCloudFrontTarget(cdn.Distribution))

	awsroute53.NewARecord(resources.Stack, jsii.String("ApexAliasA"), &awsroute53.ARecordProps{
		Zone:   domain.Zone,
		Target: target,
	})
	awsroute53.NewAaaaRecord(resources.Stack, jsii.String("ApexAliasAAAA"), &awsroute53.AaaaRecordProps{
		Zone:   domain.Zone,
		Target: target,
	})
	awsroute53.NewARecord(resources.Stack, jsii.String("WwwAliasA"), &awsroute53.ARecordProps{
		Zone:       domain.Zone,
		RecordName: jsii.String("www"),
		Target:     target,
	})
	awsroute53.NewAaaaRecord(resources.Stack, jsii.String("WwwAliasAAAA"), &awsroute53.AaaaRecordProps{
		Zone:       domain.Zone,
		RecordName: jsii.String("www"),
		Target:     target,
	})
}
