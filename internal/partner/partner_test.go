package partner

import "testing"

func TestSortPair(t *testing.T) {
	cases := []struct {
		a, b, first, second string
	}{
		{"alice", "bob", "alice", "bob"},
		{"bob", "alice", "alice", "bob"},
		{"same", "same", "same", "same"},
	}
	for _, c := range cases {
		first, second := SortPair(c.a, c.b)
		if first != c.first || second != c.second {
			t.Errorf("SortPair(%q, %q) = (%q, %q), want (%q, %q)", c.a, c.b, first, second, c.first, c.second)
		}
	}
}

func TestPairKeyIsOrderIndependent(t *testing.T) {
	if PairKey("alice", "bob") != PairKey("bob", "alice") {
		t.Error("PairKey differs by argument order")
	}
	if PairKey("alice", "bob") != "alice_bob" {
		t.Errorf("PairKey = %q, want alice_bob", PairKey("alice", "bob"))
	}
}

func TestPartnershipMembership(t *testing.T) {
	p := &Partnership{User1ID: "alice", User2ID: "bob"}

	if !p.Contains("alice") || !p.Contains("bob") {
		t.Error("Contains misses a member")
	}
	if p.Contains("carol") {
		t.Error("Contains matched a non-member")
	}

	if got := p.PartnerOf("alice"); got != "bob" {
		t.Errorf("PartnerOf(alice) = %q, want bob", got)
	}
	if got := p.PartnerOf("bob"); got != "alice" {
		t.Errorf("PartnerOf(bob) = %q, want alice", got)
	}
	if got := p.PartnerOf("carol"); got != "" {
		t.Errorf("PartnerOf(carol) = %q, want empty", got)
	}
}

func TestRequestStatusTerminal(t *testing.T) {
	if StatusPending.Terminal() {
		t.Error("PENDING reported terminal")
	}
	if !StatusAccepted.Terminal() || !StatusRejected.Terminal() {
		t.Error("ACCEPTED/REJECTED not reported terminal")
	}
}
