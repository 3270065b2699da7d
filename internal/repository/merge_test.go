package repository

import "testing"

func TestMergeTierAddsKey(t *testing.T) {
	existing := map[string]string{"seo-tool": "pro"}
	merged := mergeTier(existing, "outreach-tool", "basic")
	if len(merged) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(merged))
	}
	if merged["seo-tool"] != "pro" {
		t.Fatalf("existing key lost: %v", merged)
	}
	if merged["outreach-tool"] != "basic" {
		t.Fatalf("new key missing: %v", merged)
	}
}

func TestMergeTierUpgradesExistingKey(t *testing.T) {
	merged := mergeTier(map[string]string{"seo-tool": "basic"}, "seo-tool", "pro")
	if merged["seo-tool"] != "pro" {
		t.Fatalf("expected last write to win, got %v", merged)
	}
	if len(merged) != 1 {
		t.Fatalf("expected 1 key, got %d", len(merged))
	}
}

func TestMergeTierDoesNotMutateInput(t *testing.T) {
	existing := map[string]string{"seo-tool": "basic"}
	_ = mergeTier(existing, "seo-tool", "pro")
	if existing["seo-tool"] != "basic" {
		t.Fatal("input map was mutated")
	}
}

func TestMergeTierNilInput(t *testing.T) {
	merged := mergeTier(nil, "seo-tool", "pro")
	if merged["seo-tool"] != "pro" {
		t.Fatalf("expected key on nil input, got %v", merged)
	}
}

func TestSumFollowers(t *testing.T) {
	platforms := []CreatorPlatform{
		{Platform: "instagram", Followers: 120_000},
		{Platform: "tiktok", Followers: 80_000},
		{Platform: "youtube", Followers: 0},
	}
	if got := SumFollowers(platforms); got != 200_000 {
		t.Fatalf("expected 200000, got %d", got)
	}
	if got := SumFollowers(nil); got != 0 {
		t.Fatalf("expected 0 for empty set, got %d", got)
	}
}
