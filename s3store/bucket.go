/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package s3store keeps club data and cached web responses as objects in an
// Amazon S3 bucket.
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectAPI is the subset of *s3.Client a Bucket uses.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput,
		optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Bucket reads and writes named objects under a key prefix of one S3
// bucket.
type Bucket struct {
	// Config is the AWS configuration loaded by Init.
	Config aws.Config

	// Client is initialized in Init() from the default config. Callers may
	// instead set their own client (or a fake) and skip Init().
	Client ObjectAPI

	name   string
	prefix string

	// gzip indicates whether objects are compressed on Put and decompressed
	// on Get. Compressed object keys carry a ".gz" suffix.
	gzip bool

	// The context to use for requests made on behalf of interfaces that do
	// not pass one (httpcache.Cache).
	ctx context.Context
}

// NewBucket returns a Bucket for objects under prefix in the named bucket.
// Callers should invoke Init() on the result before use unless they set
// Client themselves.
func NewBucket(ctx context.Context, name string, prefix string,
	gzip bool) *Bucket {

	return &Bucket{
		name:   name,
		prefix: strings.Trim(prefix, "/"),
		gzip:   gzip,
		ctx:    ctx,
	}
}

func (b *Bucket) Name() string {
	return b.name
}

// Init loads the default AWS configuration (environment variables, then the
// shared config and credentials files) and checks that the bucket can be
// listed.
func (b *Bucket) Init() error {
	var err error
	b.Config, err = config.LoadDefaultConfig(b.ctx)
	if err != nil {
		return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
	}
	b.Client = s3.NewFromConfig(b.Config)

	return b.Check(b.ctx)
}

// Check verifies the bucket exists and the caller may list it.
func (b *Bucket) Check(ctx context.Context) error {
	if _, err := b.Client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(b.name),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w", b.name, err)
	}
	if _, err := b.Client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(b.name),
		MaxKeys: aws.Int32(1),
	}); err != nil {
		return fmt.Errorf("s3store.init: list objects failed for %s: %w", b.name, err)
	}

	return nil
}

func (b *Bucket) objectKey(name string) string {
	key := name
	if b.prefix != "" {
		key = b.prefix + "/" + name
	}
	if b.gzip {
		key += ".gz"
	}
	return key
}

// objectName inverts objectKey.
func (b *Bucket) objectName(key string) string {
	if b.prefix != "" {
		key = strings.TrimPrefix(key, b.prefix+"/")
	}
	if b.gzip {
		key = strings.TrimSuffix(key, ".gz")
	}
	return key
}

func isNoSuchKey(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}

// Get returns the named object's contents, or ErrObjectNotFound.
func (b *Bucket) Get(ctx context.Context, name string) ([]byte, error) {
	key := b.objectKey(name)
	resp, err := b.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%v/%v: %w", b.name, key, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("get %v/%v: %w", b.name, key, err)
	}
	defer resp.Body.Close()

	rdr := io.Reader(resp.Body)
	if b.gzip {
		gr, err := gzip.NewReader(rdr)
		if err != nil {
			return nil, fmt.Errorf("open compressed %v/%v: %w", b.name, key, err)
		}
		defer gr.Close()
		rdr = gr
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		return nil, fmt.Errorf("read %v/%v: %w", b.name, key, err)
	}

	return data, nil
}

func (b *Bucket) Put(ctx context.Context, name string, data []byte) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(b.objectKey(name)),
		Body:   bytes.NewReader(data),
	}

	if b.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("gzip %v/%v: %w", b.name, *input.Key, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("gzip %v/%v: %w", b.name, *input.Key, err)
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := b.Client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put %v/%v: %w", b.name, *input.Key, err)
	}
	return nil
}

func (b *Bucket) Delete(ctx context.Context, name string) error {
	key := b.objectKey(name)
	_, err := b.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.name),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete %v/%v: %w", b.name, key, err)
	}
	return nil
}

// List returns the names of every object whose name starts with dir.
func (b *Bucket) List(ctx context.Context, dir string) ([]string, error) {
	prefix := dir
	if b.prefix != "" {
		prefix = b.prefix + "/" + dir
	}

	var names []string
	p := s3.NewListObjectsV2Paginator(b.Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.name),
		Prefix: aws.String(prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list %v/%v: %w", b.name, prefix, err)
		}
		for _, obj := range page.Contents {
			names = append(names, b.objectName(aws.ToString(obj.Key)))
		}
	}

	return names, nil
}
