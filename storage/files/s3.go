package files

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/pkg/errors"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/intake"
)

// S3Store uploads artifacts to an S3 (compatible) bucket.
type S3Store struct {
	client s3iface.S3API
	bucket string
}

var _ intake.Store = (*S3Store)(nil) // interface compliance check

func NewS3Store(conf core.S3Config) (*S3Store, error) {
	if conf.Bucket == "" {
		return nil, errors.New("s3 bucket not configured")
	}

	awsConf := &aws.Config{
		Region:           aws.String(conf.Region),
		DisableSSL:       aws.Bool(!conf.UseSSL),
		S3ForcePathStyle: aws.Bool(true),
	}
	if conf.Endpoint != "" {
		awsConf.Endpoint = aws.String(conf.Endpoint)
	}
	if conf.AccessKey != "" {
		awsConf.Credentials = credentials.NewStaticCredentials(conf.AccessKey, conf.SecretKey, "")
	}

	sess, err := session.NewSession(awsConf)
	if err != nil {
		return nil, errors.Wrap(err, "creating aws session")
	}
	return &S3Store{client: s3.New(sess), bucket: conf.Bucket}, nil
}

func (s *S3Store) Put(ctx context.Context, name string, data []byte) error {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	return err
}
