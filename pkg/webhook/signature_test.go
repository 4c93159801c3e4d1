package webhook

import "testing"

func TestVerifyHMAC_RoundTrip(t *testing.T) {
	payload := []byte(`{"domain_id":"abc"}`)
	sig := Sign("secret", payload)

	if !VerifyHMAC("secret", payload, sig) {
		t.Fatal("signature produced by Sign must verify")
	}
	if VerifyHMAC("other", payload, sig) {
		t.Fatal("wrong secret must not verify")
	}
	if VerifyHMAC("secret", []byte("tampered"), sig) {
		t.Fatal("tampered payload must not verify")
	}
}

func TestVerifyHMAC_EmptyInputs(t *testing.T) {
	if VerifyHMAC("", []byte("x"), Sign("", []byte("x"))) {
		t.Fatal("empty secret must never verify")
	}
	if VerifyHMAC("secret", []byte("x"), "") {
		t.Fatal("empty signature must never verify")
	}
}
