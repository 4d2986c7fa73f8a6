package main

import (
	"fmt"
	"os"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"chatapp-infra/stack"
)

func main() {
	defer jsii.Close()

	app := awscdk.NewApp(nil)

	cfg, err := stack.ConfigFromContext(app.Node())
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		return
	}

	stack.NewChatAppStack(app, "ChatAppStack", &stack.ChatAppStackProps{
		StackProps: awscdk.StackProps{
			Env:         env(),
			StackName:   jsii.String(cfg.Prefix() + "-infra"),
			Description: jsii.String("Web chat application backed by Amazon Bedrock"),
		},
		Config: cfg,
	})

	app.Synth(nil)
}

// env specializes the stack for the account and region implied by the
// current CLI configuration. Hosted-zone lookups and account-suffixed
// bucket names need concrete values here.
func env() *awscdk.Environment {
	return &awscdk.Environment{
		Account: jsii.String(os.Getenv("CDK_DEFAULT_ACCOUNT")),
		Region:  jsii.String(os.Getenv("CDK_DEFAULT_REGION")),
	}
}
