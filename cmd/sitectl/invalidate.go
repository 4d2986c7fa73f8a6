package main

import (
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudfront"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newInvalidateCmd() *cobra.Command {
	var distributionID string
	var paths []string

	cmd := &cobra.Command{
		Use:   "invalidate",
		Short: "Invalidate cached frontend objects on the distribution",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.NewSessionWithOptions(session.Options{
				SharedConfigState: session.SharedConfigEnable,
			})
			if err != nil {
				return fmt.Errorf("create AWS session: %w", err)
			}

			items := make([]*string, len(paths))
			for i, p := range paths {
				items[i] = aws.String(p)
			}

			out, err := cloudfront.New(sess).CreateInvalidation(&cloudfront.CreateInvalidationInput{
				DistributionId: aws.String(distributionID),
				InvalidationBatch: &cloudfront.InvalidationBatch{
					CallerReference: aws.String(time.Now().UTC().Format("20060102T150405Z")),
					Paths: &cloudfront.Paths{
						Quantity: aws.Int64(int64(len(items))),
						Items:    items,
					},
				},
			})
			if err != nil {
				return fmt.Errorf("create invalidation: %w", err)
			}
			log.Info("invalidation created", "id", aws.StringValue(out.Invalidation.Id))
			return nil
		},
	}

	cmd.Flags().StringVar(&distributionID, "distribution-id", "", "CloudFront distribution ID (DistributionID stack output)")
	cmd.Flags().StringSliceVar(&paths, "path", []string{"/*"}, "object paths to invalidate")
	_ = cmd.MarkFlagRequired("distribution-id")
	return cmd
}
