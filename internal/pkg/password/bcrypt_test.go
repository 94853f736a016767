package password

import "testing"

func TestBcrypt_RoundTrip(t *testing.T) {
	hash, err := Hash("password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "password" {
		t.Fatalf("hash must not equal the plaintext")
	}

	v := Bcrypt{}
	if !v.Verify(hash, "password") {
		t.Fatalf("correct password rejected")
	}
	if v.Verify(hash, "wrongpassword") {
		t.Fatalf("wrong password accepted")
	}
}

func TestBcrypt_GarbageHash(t *testing.T) {
	v := Bcrypt{}
	if v.Verify("not-a-bcrypt-hash", "password") {
		t.Fatalf("garbage hash accepted")
	}
}
