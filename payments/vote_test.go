package payments

import "testing"

func TestVoteIsVerified(t *testing.T) {
	v := testVote(1, 100, "payee-a")
	if v.IsVerified() {
		t.Fatal("expected an unsigned vote to report IsVerified()==false")
	}
	v.Signature = []byte{0x01}
	if !v.IsVerified() {
		t.Fatal("expected a signed vote to report IsVerified()==true")
	}
}

func TestVoteHashIsIndependentOfSignature(t *testing.T) {
	v1 := testVote(1, 100, "payee-a")
	v2 := testVote(1, 100, "payee-a")
	v2.Signature = []byte{0xde, 0xad, 0xbe, 0xef}

	if v1.Hash() != v2.Hash() {
		t.Fatal("expected Hash to be independent of the signature bytes")
	}
}

func TestVoteHashDiffersOnPayeeHeightOrVoter(t *testing.T) {
	base := testVote(1, 100, "payee-a")

	diffPayee := testVote(1, 100, "payee-b")
	diffHeight := testVote(1, 101, "payee-a")
	diffVoter := testVote(2, 100, "payee-a")

	if base.Hash() == diffPayee.Hash() {
		t.Fatal("expected a different payee to change the hash")
	}
	if base.Hash() == diffHeight.Hash() {
		t.Fatal("expected a different height to change the hash")
	}
	if base.Hash() == diffVoter.Hash() {
		t.Fatal("expected a different voter to change the hash")
	}
}

func TestVoteEqualIgnoresSignature(t *testing.T) {
	v1 := testVote(1, 100, "payee-a")
	v2 := testVote(1, 100, "payee-a")
	v2.Signature = []byte{0x01, 0x02}

	if !v1.Equal(v2) {
		t.Fatal("expected Equal to ignore differing signature bytes")
	}

	v3 := testVote(1, 100, "payee-b")
	if v1.Equal(v3) {
		t.Fatal("expected Equal to be false for a different payee")
	}
}

func TestVoteSigningDigestIsDeterministic(t *testing.T) {
	v1 := testVote(1, 100, "payee-a")
	v2 := testVote(1, 100, "payee-a")

	d1 := v1.SigningDigest()
	d2 := v2.SigningDigest()
	if len(d1) == 0 {
		t.Fatal("expected a non-empty signing digest")
	}
	if string(d1) != string(d2) {
		t.Fatal("expected the same vote fields to produce the same signing digest")
	}
}
