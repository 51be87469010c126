package ratelimit

import "testing"

func TestAllowConsumesCapacity(t *testing.T) {
    l := New()
    for i := 0; i < 5; i++ {
        if !l.Allow("client", 5, 0) {
            t.Fatalf("request %d should pass", i)
        }
    }
    if l.Allow("client", 5, 0) {
        t.Fatalf("expected sixth request to be limited")
    }
}

func TestKeysAreIndependent(t *testing.T) {
    l := New()
    if !l.Allow("a", 1, 0) {
        t.Fatalf("first key should pass")
    }
    if l.Allow("a", 1, 0) {
        t.Fatalf("first key should be exhausted")
    }
    if !l.Allow("b", 1, 0) {
        t.Fatalf("second key should pass")
    }
}
