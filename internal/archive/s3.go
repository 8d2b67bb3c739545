package archive

import (
	"bytes"
	"io/ioutil"
	"log"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
)

// S3Config is the subset of connection details an S3Store needs.
type S3Config struct {
	Region  string
	Bucket  string
	Profile string

	// MaxRetries bounds the SDK's own retry loop; archive pushes can be
	// run from flaky links, so the default is generous.
	MaxRetries int
}

type S3Store struct {
	client *s3.S3
	bucket string
}

var _ Store = (*S3Store)(nil)

// NewS3Store builds an S3Store from c, using the named profile's shared
// credentials file for authentication (no static keys in config).
func NewS3Store(c S3Config) (*S3Store, error) {
	maxRetries := c.MaxRetries
	if maxRetries == 0 {
		maxRetries = 16
	}
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(c.Region),
		Credentials: credentials.NewSharedCredentials("", c.Profile),
		MaxRetries:  aws.Int(maxRetries),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &S3Store{
		client: s3.New(sess),
		bucket: c.Bucket,
	}, nil
}

func (s *S3Store) Get(key Key) (Value, error) {
	output, err := s.client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(string(key)),
	})
	if err != nil {
		if rfErr, ok := err.(awserr.RequestFailure); ok {
			if rfErr.StatusCode() == http.StatusNotFound {
				return nil, errors.Wrapf(ErrNotFound, "key=%q err=%+v", key, err)
			}
		}
		return nil, err
	}
	defer func() {
		if err := output.Body.Close(); err != nil {
			log.Printf("warning: archive.S3Store.Get: could not close response body: %v", err)
		}
	}()
	return ioutil.ReadAll(output.Body)
}

func (s *S3Store) Put(key Key, value Value) error {
	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(string(key)),
		Body:   bytes.NewReader(value),
	})
	if err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (s *S3Store) Delete(key Key) error {
	if _, err := s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(string(key)),
	}); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func (s *S3Store) ForEach(cb func(Key) error) error {
	input := &s3.ListObjectsInput{Bucket: aws.String(s.bucket)}
	for {
		output, err := s.client.ListObjects(input)
		if err != nil {
			return errors.WithStack(err)
		}
		for _, o := range output.Contents {
			if err := cb(Key(*o.Key)); err != nil {
				return err
			}
		}
		if output.NextMarker == nil {
			return nil
		}
		input.Marker = output.NextMarker
	}
}
