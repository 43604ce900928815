package redis

import (
	"context"
	"sort"
	"testing"
	"time"
)

func fillSet(t *testing.T, client *Client, key string, members ...string) {
	t.Helper()
	if _, err := client.Sets.Add(context.Background(), key, members...); err != nil {
		t.Fatalf("Add %s: %v", key, err)
	}
}

func sorted(ss []string) []string {
	out := append([]string(nil), ss...)
	sort.Strings(out)
	return out
}

func TestSetsAddRemove(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	added, err := client.Sets.Add(ctx, "tags", "go", "redis", "go")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if added != 2 {
		t.Fatalf("Add = %d, want 2 (duplicates collapse)", added)
	}

	removed, err := client.Sets.Remove(ctx, "tags", "go", "missing")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed != 1 {
		t.Fatalf("Remove = %d, want 1", removed)
	}
}

func TestSetsAddNoMembersIsNoop(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	added, err := client.Sets.Add(ctx, "tags")
	if err != nil || added != 0 {
		t.Fatalf("Add with no members = (%d, %v), want (0, nil)", added, err)
	}
	if _, err := client.Sets.Add(ctx, "", "a"); !IsInvalidArgument(err) {
		t.Fatalf("Add with empty key: got %v, want invalid-argument", err)
	}
}

func TestSetsMembersAndCardinality(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	fillSet(t, client, "s", "a", "b", "c")

	members, err := client.Sets.Members(ctx, "s")
	if err != nil {
		t.Fatalf("Members: %v", err)
	}
	want := []string{"a", "b", "c"}
	got := sorted(members)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Members = %v, want %v", got, want)
		}
	}

	count, err := client.Sets.Cardinality(ctx, "s")
	if err != nil || count != 3 {
		t.Fatalf("Cardinality = (%d, %v), want (3, nil)", count, err)
	}

	count, err = client.Sets.Cardinality(ctx, "absent")
	if err != nil || count != 0 {
		t.Fatalf("Cardinality of missing set = (%d, %v), want (0, nil)", count, err)
	}
}

func TestSetsIsMember(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	fillSet(t, client, "s", "a")

	isMember, err := client.Sets.IsMember(ctx, "s", "a")
	if err != nil || !isMember {
		t.Fatalf("IsMember(a) = (%v, %v), want (true, nil)", isMember, err)
	}
	isMember, err = client.Sets.IsMember(ctx, "s", "z")
	if err != nil || isMember {
		t.Fatalf("IsMember(z) = (%v, %v), want (false, nil)", isMember, err)
	}
}

func TestSetsPop(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	fillSet(t, client, "s", "only")

	member, found, err := client.Sets.Pop(ctx, "s")
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if !found || member != "only" {
		t.Fatalf("Pop = (%q, %v), want (only, true)", member, found)
	}

	_, found, err = client.Sets.Pop(ctx, "s")
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if found {
		t.Fatal("Pop on empty set reported a member")
	}
}

func TestSetsRandomDoesNotConsume(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	fillSet(t, client, "s", "a", "b")

	_, found, err := client.Sets.Random(ctx, "s")
	if err != nil || !found {
		t.Fatalf("Random = (found=%v, %v), want a member", found, err)
	}
	count, _ := client.Sets.Cardinality(ctx, "s")
	if count != 2 {
		t.Fatalf("Cardinality after Random = %d, want 2", count)
	}
}

func TestSetsMove(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	fillSet(t, client, "src", "a", "b")

	moved, err := client.Sets.Move(ctx, "src", "dst", "a")
	if err != nil || !moved {
		t.Fatalf("Move = (%v, %v), want (true, nil)", moved, err)
	}
	isMember, _ := client.Sets.IsMember(ctx, "dst", "a")
	if !isMember {
		t.Fatal("moved member absent from destination")
	}
	moved, err = client.Sets.Move(ctx, "src", "dst", "missing")
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if moved {
		t.Fatal("Move of absent member reported moved")
	}
}

func TestSetsAlgebra(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	fillSet(t, client, "a", "1", "2", "3")
	fillSet(t, client, "b", "2", "3", "4")

	union, err := client.Sets.Union(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	if len(union) != 4 {
		t.Fatalf("Union = %v, want 4 members", union)
	}

	inter, err := client.Sets.Intersect(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Intersect: %v", err)
	}
	got := sorted(inter)
	if len(got) != 2 || got[0] != "2" || got[1] != "3" {
		t.Fatalf("Intersect = %v, want [2 3]", got)
	}

	diff, err := client.Sets.Difference(ctx, []string{"a", "b"})
	if err != nil {
		t.Fatalf("Difference: %v", err)
	}
	if len(diff) != 1 || diff[0] != "1" {
		t.Fatalf("Difference = %v, want [1]", diff)
	}
}

func TestSetsAlgebraWithMissingOperand(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	fillSet(t, client, "a", "1", "2")

	inter, err := client.Sets.Intersect(ctx, []string{"a", "absent"})
	if err != nil {
		t.Fatalf("Intersect: %v", err)
	}
	if len(inter) != 0 {
		t.Fatalf("Intersect with missing operand = %v, want empty", inter)
	}

	union, err := client.Sets.Union(ctx, []string{"a", "absent"})
	if err != nil {
		t.Fatalf("Union: %v", err)
	}
	if len(union) != 2 {
		t.Fatalf("Union with missing operand = %v, want the 2 members of a", union)
	}
}

func TestSetsAlgebraStore(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()
	fillSet(t, client, "a", "1", "2")
	fillSet(t, client, "b", "2", "3")

	count, err := client.Sets.UnionStore(ctx, "dst", []string{"a", "b"})
	if err != nil || count != 3 {
		t.Fatalf("UnionStore = (%d, %v), want (3, nil)", count, err)
	}
	count, err = client.Sets.IntersectStore(ctx, "dst", []string{"a", "b"})
	if err != nil || count != 1 {
		t.Fatalf("IntersectStore = (%d, %v), want (1, nil)", count, err)
	}
	count, err = client.Sets.DifferenceStore(ctx, "dst", []string{"a", "b"})
	if err != nil || count != 1 {
		t.Fatalf("DifferenceStore = (%d, %v), want (1, nil)", count, err)
	}
	members, _ := client.Sets.Members(ctx, "dst")
	if len(members) != 1 || members[0] != "1" {
		t.Fatalf("dst = %v, want [1]", members)
	}
}

func TestSetsWholeKeyLifecycle(t *testing.T) {
	client, mr := newTestClient(t)
	ctx := context.Background()
	fillSet(t, client, "s", "a")

	ttl, err := client.Sets.TTL(ctx, "s")
	if err != nil || ttl != -1 {
		t.Fatalf("TTL = (%d, %v), want (-1, nil)", ttl, err)
	}

	set, err := client.Sets.Expire(ctx, "s", 5)
	if err != nil || !set {
		t.Fatalf("Expire = (%v, %v), want (true, nil)", set, err)
	}
	mr.FastForward(6 * time.Second)

	exists, err := client.Sets.Exists(ctx, "s")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if exists {
		t.Fatal("set still present after TTL elapsed")
	}

	ttl, err = client.Sets.TTL(ctx, "s")
	if err != nil || ttl != -2 {
		t.Fatalf("TTL of missing set = (%d, %v), want (-2, nil)", ttl, err)
	}
}

func TestSetsBatchOperations(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	added, err := client.Sets.BatchAdd(ctx, []SetMembers{
		{Key: "s1", Members: []string{"a", "b"}},
		{Key: "s2", Members: []string{"b"}},
	})
	if err != nil {
		t.Fatalf("BatchAdd: %v", err)
	}
	if added[0] != 2 || added[1] != 1 {
		t.Fatalf("BatchAdd = %v, want [2 1]", added)
	}

	members, err := client.Sets.BatchMembers(ctx, []string{"s1", "s2", "s9"})
	if err != nil {
		t.Fatalf("BatchMembers: %v", err)
	}
	if len(members[0]) != 2 || len(members[1]) != 1 || len(members[2]) != 0 {
		t.Fatalf("BatchMembers = %v", members)
	}

	results, err := client.Sets.BatchIsMember(ctx, []SetMember{
		{Key: "s1", Member: "a"},
		{Key: "s2", Member: "a"},
	})
	if err != nil {
		t.Fatalf("BatchIsMember: %v", err)
	}
	if !results[0] || results[1] {
		t.Fatalf("BatchIsMember = %v, want [true false]", results)
	}

	counts, err := client.Sets.BatchCardinality(ctx, []string{"s1", "s2"})
	if err != nil {
		t.Fatalf("BatchCardinality: %v", err)
	}
	if counts[0] != 2 || counts[1] != 1 {
		t.Fatalf("BatchCardinality = %v, want [2 1]", counts)
	}

	removed, err := client.Sets.BatchRemove(ctx, []SetMembers{
		{Key: "s1", Members: []string{"a", "missing"}},
	})
	if err != nil {
		t.Fatalf("BatchRemove: %v", err)
	}
	if removed[0] != 1 {
		t.Fatalf("BatchRemove = %v, want [1]", removed)
	}

	deleted, err := client.Sets.BatchDelete(ctx, []string{"s1", "s2", "s9"})
	if err != nil {
		t.Fatalf("BatchDelete: %v", err)
	}
	if deleted != 2 {
		t.Fatalf("BatchDelete = %d, want 2", deleted)
	}
}
