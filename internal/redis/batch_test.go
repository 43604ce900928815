package redis

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
)

func TestBatcherPipeline(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	results, err := client.Batch.Pipeline(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, "a", "1", 0)
		pipe.Incr(ctx, "n")
		pipe.Get(ctx, "a")
		return nil
	})
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Pipeline returned %d results, want 3", len(results))
	}
	if results[0].Err != nil || results[0].Value != "OK" {
		t.Fatalf("results[0] = %+v, want OK", results[0])
	}
	if results[1].Err != nil || results[1].Value != int64(1) {
		t.Fatalf("results[1] = %+v, want 1", results[1])
	}
	if results[2].Err != nil || results[2].Value != "1" {
		t.Fatalf("results[2] = %+v, want \"1\"", results[2])
	}
}

func TestBatcherPipelineKeyMissIsNil(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	results, err := client.Batch.Pipeline(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Get(ctx, "absent")
		return nil
	})
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}
	if results[0].Err != nil {
		t.Fatalf("key miss surfaced as error: %v", results[0].Err)
	}
	if results[0].Value != nil {
		t.Fatalf("key miss value = %v, want nil", results[0].Value)
	}
}

func TestBatcherPipelinePartialFailure(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if err := client.Strings.Set(ctx, "word", "abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	results, err := client.Batch.Pipeline(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Incr(ctx, "word")
		pipe.Set(ctx, "ok", "1", 0)
		return nil
	})
	if err != nil {
		t.Fatalf("Pipeline: %v", err)
	}
	if results[0].Err == nil {
		t.Fatal("INCR on non-numeric value carried no error")
	}
	if results[1].Err != nil {
		t.Fatalf("healthy neighbour failed: %v", results[1].Err)
	}

	value, found, _ := client.Strings.Get(ctx, "ok")
	if !found || value != "1" {
		t.Fatal("command after rejected neighbour did not apply")
	}
}

func TestBatcherTransaction(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	results, err := client.Batch.Transaction(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, "t1", "a", 0)
		pipe.Set(ctx, "t2", "b", 0)
		return nil
	})
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Transaction returned %d results, want 2", len(results))
	}
	for _, k := range []string{"t1", "t2"} {
		if _, found, _ := client.Strings.Get(ctx, k); !found {
			t.Fatalf("key %s missing after transaction", k)
		}
	}
}
