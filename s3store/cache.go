/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package s3store

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"io"
	"log"

	"github.com/gregjones/httpcache"
)

// Cache is an httpcache.Cache whose entries are objects in a Bucket. It is
// based on the original github.com/sourcegraph/s3cache.
type Cache struct {
	bucket *Bucket

	// LogErrors controls whether failed requests are logged. Cache misses
	// are never logged.
	LogErrors bool
}

var _ httpcache.Cache = (*Cache)(nil)

func NewCache(b *Bucket) *Cache {
	return &Cache{
		bucket:    b,
		LogErrors: true,
	}
}

func (c *Cache) Get(key string) ([]byte, bool) {
	data, err := c.bucket.Get(c.bucket.ctx, cacheKeyToName(key))
	if err != nil {
		if c.LogErrors && !errors.Is(err, ErrObjectNotFound) {
			log.Printf("s3store.cache.get: %v", err)
		}
		return []byte{}, false
	}

	return data, true
}

// Set stores the provided data in the cache under the given key.
func (c *Cache) Set(key string, data []byte) {
	err := c.bucket.Put(c.bucket.ctx, cacheKeyToName(key), data)
	if err != nil && c.LogErrors {
		log.Printf("s3store.cache.set: %v", err)
	}
}

func (c *Cache) Delete(key string) {
	err := c.bucket.Delete(c.bucket.ctx, cacheKeyToName(key))
	if err != nil && c.LogErrors {
		log.Printf("s3store.cache.delete: %v", err)
	}
}

func cacheKeyToName(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	return "cache/" + hex.EncodeToString(h.Sum(nil))
}
