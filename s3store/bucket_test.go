/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package s3store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/mikeb26/golfclub-teebot/internal"
)

func TestBucketRoundTrip(t *testing.T) {
	for _, gz := range []bool{false, true} {
		t.Run(fmt.Sprintf("gzip=%v", gz), func(t *testing.T) {
			ctx := context.Background()
			b, objs := newTestBucket("/club/", gz)

			if err := b.Put(ctx, "notes/a.txt", []byte("hello")); err != nil {
				t.Fatalf("Put: %v", err)
			}
			want := "club/notes/a.txt"
			if gz {
				want += ".gz"
			}
			if keys := objs.keys(); len(keys) != 1 || keys[0] != want {
				t.Errorf("keys = %v; want [%v]", keys, want)
			}

			data, err := b.Get(ctx, "notes/a.txt")
			if err != nil || string(data) != "hello" {
				t.Errorf("Get = %q, %v", data, err)
			}

			names, err := b.List(ctx, "notes/")
			if err != nil || len(names) != 1 || names[0] != "notes/a.txt" {
				t.Errorf("List = %v, %v", names, err)
			}

			if err := b.Delete(ctx, "notes/a.txt"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			_, err = b.Get(ctx, "notes/a.txt")
			if !errors.Is(err, ErrObjectNotFound) {
				t.Errorf("Get after delete = %v; want ErrObjectNotFound", err)
			}
		})
	}
}

func TestBucketListPages(t *testing.T) {
	ctx := context.Background()
	b, _ := newTestBucket("", false)
	for i := 0; i < 5; i++ {
		if err := b.Put(ctx, fmt.Sprintf("d/%d", i), []byte{byte(i)}); err != nil {
			t.Fatal(err)
		}
	}
	if err := b.Put(ctx, "other", nil); err != nil {
		t.Fatal(err)
	}

	names, err := b.List(ctx, "d/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 5 {
		t.Errorf("List = %v; want 5 names across pages", names)
	}
}

func TestBucketCheck(t *testing.T) {
	b, _ := newTestBucket("", false)
	if err := b.Check(context.Background()); err != nil {
		t.Errorf("Check: %v", err)
	}
}

func TestBucketInitLive(t *testing.T) {
	name := os.Getenv(internal.EnvCacheBucket)
	if name == "" {
		t.Skipf("Skipping test; %v is not set", internal.EnvCacheBucket)
	}
	b := NewBucket(context.Background(), name, "test", true)
	if err := b.Init(); err != nil {
		t.Skipf("Skipping test due to lack of access to %v: %v", name, err)
	}
}
