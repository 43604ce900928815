package redis

import (
	"context"
	"testing"
	"time"
)

func TestScriptsEval(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	result, err := client.Scripts.Eval(ctx, `return redis.call('SET', KEYS[1], ARGV[1])`,
		[]string{"k"}, []any{"v"})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if result != "OK" {
		t.Fatalf("Eval = %v, want OK", result)
	}

	value, found, _ := client.Strings.Get(ctx, "k")
	if !found || value != "v" {
		t.Fatalf("Get after Eval = (%q, %v), want (v, true)", value, found)
	}
}

func TestScriptsEvalEmptyBody(t *testing.T) {
	client, _ := newTestClient(t)

	if _, err := client.Scripts.Eval(context.Background(), "", nil, nil); !IsInvalidArgument(err) {
		t.Fatalf("Eval(\"\"): got %v, want invalid-argument", err)
	}
}

func TestScriptsEvalScriptError(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Scripts.Eval(context.Background(), `return redis.call('NOSUCH')`, nil, nil)
	if err == nil {
		t.Fatal("Eval of broken script succeeded")
	}
	if KindOf(err) != KindOperation {
		t.Fatalf("error kind = %v, want operation", KindOf(err))
	}
}

func TestScriptsRateLimit(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := client.Scripts.RateLimit(ctx, "rl:client", 3, 60)
		if err != nil {
			t.Fatalf("RateLimit hit %d: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("hit %d rejected within limit", i+1)
		}
	}

	allowed, err := client.Scripts.RateLimit(ctx, "rl:client", 3, 60)
	if err != nil {
		t.Fatalf("RateLimit: %v", err)
	}
	if allowed {
		t.Fatal("hit beyond limit was allowed")
	}

	mr.FastForward(61 * time.Second)
	allowed, err = client.Scripts.RateLimit(ctx, "rl:client", 3, 60)
	if err != nil {
		t.Fatalf("RateLimit after window: %v", err)
	}
	if !allowed {
		t.Fatal("hit in fresh window rejected")
	}
}

func TestScriptsRateLimitValidation(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if _, err := client.Scripts.RateLimit(ctx, "", 3, 60); !IsInvalidArgument(err) {
		t.Fatalf("empty key: got %v, want invalid-argument", err)
	}
	if _, err := client.Scripts.RateLimit(ctx, "k", 0, 60); !IsInvalidArgument(err) {
		t.Fatalf("zero limit: got %v, want invalid-argument", err)
	}
	if _, err := client.Scripts.RateLimit(ctx, "k", 3, -1); !IsInvalidArgument(err) {
		t.Fatalf("negative window: got %v, want invalid-argument", err)
	}
}

func TestScriptsIncrementCounters(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	values, err := client.Scripts.IncrementCounters(ctx, []KeyDelta{
		{Key: "c:a", Delta: 2},
		{Key: "c:b", Delta: -1},
		{Key: "c:a", Delta: 3},
	})
	if err != nil {
		t.Fatalf("IncrementCounters: %v", err)
	}
	want := []int64{2, -1, 5}
	for i, v := range values {
		if v != want[i] {
			t.Fatalf("values[%d] = %d, want %d", i, v, want[i])
		}
	}

	values, err = client.Scripts.IncrementCounters(ctx, nil)
	if err != nil || values != nil {
		t.Fatalf("IncrementCounters(nil) = (%v, %v), want (nil, nil)", values, err)
	}
}

func TestScriptsSetManyWithTTL(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	written, err := client.Scripts.SetManyWithTTL(ctx, map[string]string{
		"a": "1", "b": "2",
	}, 10)
	if err != nil {
		t.Fatalf("SetManyWithTTL: %v", err)
	}
	if written != 2 {
		t.Fatalf("written = %d, want 2", written)
	}

	ttl, err := client.Strings.TTL(ctx, "a")
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= 0 || ttl > 10 {
		t.Fatalf("TTL = %d, want in (0, 10]", ttl)
	}

	mr.FastForward(11 * time.Second)
	_, found, _ := client.Strings.Get(ctx, "b")
	if found {
		t.Fatal("key still present after shared TTL elapsed")
	}
}

func TestScriptsSetManyWithTTLValidation(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if _, err := client.Scripts.SetManyWithTTL(ctx, map[string]string{"k": "v"}, 0); !IsInvalidArgument(err) {
		t.Fatalf("zero ttl: got %v, want invalid-argument", err)
	}
	written, err := client.Scripts.SetManyWithTTL(ctx, nil, 10)
	if err != nil || written != 0 {
		t.Fatalf("SetManyWithTTL(nil) = (%d, %v), want (0, nil)", written, err)
	}
}
