package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPairKeyIsSymmetric(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	if PairKey(a, b) != PairKey(b, a) {
		t.Fatalf("pair key not symmetric: %q vs %q", PairKey(a, b), PairKey(b, a))
	}
}

func TestPairKeyOrdersSmallerIDFirst(t *testing.T) {
	a, _ := primitive.ObjectIDFromHex("000000000000000000000001")
	b, _ := primitive.ObjectIDFromHex("000000000000000000000002")

	want := a.Hex() + ":" + b.Hex()
	if got := PairKey(b, a); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestPairKeyDistinctPairsDiffer(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	if PairKey(a, b) == PairKey(a, c) {
		t.Fatal("different pairs produced the same key")
	}
}

func TestCounterpart(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	m := Match{UserA: a, UserB: b}

	if m.Counterpart(a) != b {
		t.Fatal("counterpart of userA should be userB")
	}
	if m.Counterpart(b) != a {
		t.Fatal("counterpart of userB should be userA")
	}
}
