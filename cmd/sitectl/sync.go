package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// uploader is the slice of s3manager.Uploader that syncDir needs.
type uploader interface {
	Upload(input *s3manager.UploadInput, options ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

func newSyncCmd() *cobra.Command {
	var bucket string

	cmd := &cobra.Command{
		Use:   "sync <dir>",
		Short: "Upload a built frontend directory to the site bucket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := session.NewSessionWithOptions(session.Options{
				SharedConfigState: session.SharedConfigEnable,
			})
			if err != nil {
				return fmt.Errorf("create AWS session: %w", err)
			}
			return syncDir(s3manager.NewUploader(sess), bucket, args[0])
		},
	}

	cmd.Flags().StringVar(&bucket, "bucket", "", "frontend bucket name (FrontendBucketName stack output)")
	_ = cmd.MarkFlagRequired("bucket")
	return cmd
}

// syncDir uploads every regular file under dir, keyed by its path relative
// to dir, with a content type derived from the file extension.
func syncDir(up uploader, bucket, dir string) error {
	count := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		contentType := mime.TypeByExtension(filepath.Ext(path))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		_, err = up.Upload(&s3manager.UploadInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(key),
			Body:        f,
			ContentType: aws.String(contentType),
		})
		f.Close()
		if err != nil {
			return fmt.Errorf("upload %s: %w", key, err)
		}
		log.Info("uploaded", "key", key, "type", contentType)
		count++
		return nil
	})
	if err != nil {
		return err
	}
	log.Info("sync complete", "bucket", bucket, "files", count)
	return nil
}
