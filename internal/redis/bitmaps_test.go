package redis

import (
	"context"
	"testing"
	"time"
)

func TestBitmapsSetGetBit(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	prev, err := client.Bitmaps.SetBit(ctx, "flags", 7, true)
	if err != nil {
		t.Fatalf("SetBit: %v", err)
	}
	if prev {
		t.Fatal("previous bit on fresh key should be clear")
	}

	prev, err = client.Bitmaps.SetBit(ctx, "flags", 7, false)
	if err != nil {
		t.Fatalf("SetBit clear: %v", err)
	}
	if !prev {
		t.Fatal("previous bit should be set")
	}

	value, err := client.Bitmaps.GetBit(ctx, "flags", 7)
	if err != nil {
		t.Fatalf("GetBit: %v", err)
	}
	if value {
		t.Fatal("bit should be clear after the second write")
	}
}

func TestBitmapsGetBitMissingKeyReadsZero(t *testing.T) {
	client, _ := newTestClient(t)

	value, err := client.Bitmaps.GetBit(context.Background(), "absent", 100)
	if err != nil {
		t.Fatalf("GetBit: %v", err)
	}
	if value {
		t.Fatal("missing key must read as clear bits")
	}
}

func TestBitmapsRejectsBadArguments(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if _, err := client.Bitmaps.SetBit(ctx, "", 0, true); !IsInvalidArgument(err) {
		t.Fatalf("empty key: err = %v, want invalid argument", err)
	}
	if _, err := client.Bitmaps.SetBit(ctx, "k", -1, true); !IsInvalidArgument(err) {
		t.Fatalf("negative offset: err = %v, want invalid argument", err)
	}
	if _, err := client.Bitmaps.And(ctx, "", []string{"a"}); !IsInvalidArgument(err) {
		t.Fatalf("empty destination: err = %v, want invalid argument", err)
	}
	if _, err := client.Bitmaps.And(ctx, "dst", nil); !IsInvalidArgument(err) {
		t.Fatalf("no source keys: err = %v, want invalid argument", err)
	}
}

func TestBitmapsBitCount(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	for _, offset := range []int64{0, 3, 10} {
		if _, err := client.Bitmaps.SetBit(ctx, "pop", offset, true); err != nil {
			t.Fatalf("SetBit %d: %v", offset, err)
		}
	}

	count, err := client.Bitmaps.BitCount(ctx, "pop")
	if err != nil {
		t.Fatalf("BitCount: %v", err)
	}
	if count != 3 {
		t.Fatalf("BitCount = %d, want 3", count)
	}

	// Byte range [1, 1] covers offsets 8..15 only.
	count, err = client.Bitmaps.BitCountRange(ctx, "pop", 1, 1)
	if err != nil {
		t.Fatalf("BitCountRange: %v", err)
	}
	if count != 1 {
		t.Fatalf("BitCountRange = %d, want 1", count)
	}

	count, err = client.Bitmaps.BitCount(ctx, "absent")
	if err != nil {
		t.Fatalf("BitCount missing key: %v", err)
	}
	if count != 0 {
		t.Fatalf("BitCount missing key = %d, want 0", count)
	}
}

func TestBitmapsBitOps(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	// a = bits {0, 1}, b = bits {1, 2}, both one byte wide.
	for _, offset := range []int64{0, 1} {
		if _, err := client.Bitmaps.SetBit(ctx, "a", offset, true); err != nil {
			t.Fatalf("SetBit a: %v", err)
		}
	}
	for _, offset := range []int64{1, 2} {
		if _, err := client.Bitmaps.SetBit(ctx, "b", offset, true); err != nil {
			t.Fatalf("SetBit b: %v", err)
		}
	}

	size, err := client.Bitmaps.And(ctx, "and", []string{"a", "b"})
	if err != nil {
		t.Fatalf("And: %v", err)
	}
	if size != 1 {
		t.Fatalf("And size = %d, want 1", size)
	}

	if _, err := client.Bitmaps.Or(ctx, "or", []string{"a", "b"}); err != nil {
		t.Fatalf("Or: %v", err)
	}
	if _, err := client.Bitmaps.Xor(ctx, "xor", []string{"a", "b"}); err != nil {
		t.Fatalf("Xor: %v", err)
	}

	counts, err := client.Bitmaps.BatchBitCount(ctx, []string{"and", "or", "xor"})
	if err != nil {
		t.Fatalf("BatchBitCount: %v", err)
	}
	if counts[0] != 1 || counts[1] != 3 || counts[2] != 2 {
		t.Fatalf("counts = %v, want [1 3 2]", counts)
	}
}

func TestBitmapsNot(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if _, err := client.Bitmaps.SetBit(ctx, "src", 0, true); err != nil {
		t.Fatalf("SetBit: %v", err)
	}
	if _, err := client.Bitmaps.SetBit(ctx, "src", 1, true); err != nil {
		t.Fatalf("SetBit: %v", err)
	}

	size, err := client.Bitmaps.Not(ctx, "inv", "src")
	if err != nil {
		t.Fatalf("Not: %v", err)
	}
	if size != 1 {
		t.Fatalf("Not size = %d, want 1", size)
	}

	count, err := client.Bitmaps.BitCount(ctx, "inv")
	if err != nil {
		t.Fatalf("BitCount: %v", err)
	}
	if count != 6 {
		t.Fatalf("complement BitCount = %d, want 6", count)
	}
}

func TestBitmapsBitPos(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	if _, err := client.Bitmaps.SetBit(ctx, "scan", 5, true); err != nil {
		t.Fatalf("SetBit: %v", err)
	}
	if _, err := client.Bitmaps.SetBit(ctx, "scan", 9, true); err != nil {
		t.Fatalf("SetBit: %v", err)
	}

	pos, err := client.Bitmaps.BitPos(ctx, "scan", true)
	if err != nil {
		t.Fatalf("BitPos: %v", err)
	}
	if pos != 5 {
		t.Fatalf("BitPos = %d, want 5", pos)
	}

	// Byte range [1, 1] skips the first byte.
	pos, err = client.Bitmaps.BitPosRange(ctx, "scan", true, 1, 1)
	if err != nil {
		t.Fatalf("BitPosRange: %v", err)
	}
	if pos != 9 {
		t.Fatalf("BitPosRange = %d, want 9", pos)
	}

	pos, err = client.Bitmaps.BitPos(ctx, "absent", true)
	if err != nil {
		t.Fatalf("BitPos missing key: %v", err)
	}
	if pos != -1 {
		t.Fatalf("BitPos missing key = %d, want -1", pos)
	}
}

func TestBitmapsWholeKeyLifecycle(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()

	if _, err := client.Bitmaps.SetBit(ctx, "life", 9, true); err != nil {
		t.Fatalf("SetBit: %v", err)
	}

	length, err := client.Bitmaps.Length(ctx, "life")
	if err != nil {
		t.Fatalf("Length: %v", err)
	}
	if length != 2 {
		t.Fatalf("Length = %d, want 2 bytes", length)
	}

	exists, err := client.Bitmaps.Exists(ctx, "life")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Fatal("bitmap should exist")
	}

	ttl, err := client.Bitmaps.TTL(ctx, "life")
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl != -1 {
		t.Fatalf("TTL = %d, want -1 for no expiry", ttl)
	}

	set, err := client.Bitmaps.Expire(ctx, "life", 60)
	if err != nil {
		t.Fatalf("Expire: %v", err)
	}
	if !set {
		t.Fatal("Expire should apply to an existing key")
	}
	mr.FastForward(61 * time.Second)

	exists, err = client.Bitmaps.Exists(ctx, "life")
	if err != nil {
		t.Fatalf("Exists after expiry: %v", err)
	}
	if exists {
		t.Fatal("bitmap should have expired")
	}

	deleted, err := client.Bitmaps.Delete(ctx, "life")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if deleted {
		t.Fatal("Delete after expiry should report no key removed")
	}
}

func TestBitmapsBatchSetGetBits(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	previous, err := client.Bitmaps.BatchSetBits(ctx, "bulk", []BitWrite{
		{Offset: 0, Value: true},
		{Offset: 2, Value: true},
		{Offset: 0, Value: false},
	})
	if err != nil {
		t.Fatalf("BatchSetBits: %v", err)
	}
	if previous[0] || previous[1] || !previous[2] {
		t.Fatalf("previous = %v, want [false false true]", previous)
	}

	values, err := client.Bitmaps.BatchGetBits(ctx, "bulk", []int64{0, 1, 2})
	if err != nil {
		t.Fatalf("BatchGetBits: %v", err)
	}
	if values[0] || values[1] || !values[2] {
		t.Fatalf("values = %v, want [false false true]", values)
	}

	if _, err := client.Bitmaps.BatchSetBits(ctx, "bulk", nil); err != nil {
		t.Fatalf("BatchSetBits with no writes should be a no-op: %v", err)
	}
}
