package wallet

import (
	"context"
	"strings"
	"testing"
)

func TestLoad_KnownVector(t *testing.T) {
	// Known WIF to address mapping
	wif := "KwdMAjGmerYanjeui5SHS7JkmpZvVipYvB2LJGU1ZxJwYvP98617"
	w, err := Load(wif)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := "1LoVGDgRs9hTfTNJNuXKSpywcbdvwRXpmK"
	if w.Address != want {
		t.Errorf("address = %s, want %s", w.Address, want)
	}
}

func TestLoad_AddressFormat(t *testing.T) {
	wif := "KwdMAjGmerYanjeui5SHS7JkmpZvVipYvB2LJGU1ZxJwYvP98617"
	w, err := Load(wif)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.HasPrefix(w.Address, "1") {
		t.Errorf("address %s doesn't start with '1'", w.Address)
	}
	if len(w.Address) < 25 || len(w.Address) > 34 {
		t.Errorf("address length %d is unusual", len(w.Address))
	}
}

func TestLoad_CompressedPubKey(t *testing.T) {
	wif := "KwdMAjGmerYanjeui5SHS7JkmpZvVipYvB2LJGU1ZxJwYvP98617"
	w, err := Load(wif)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(w.PublicKey) != 33 {
		t.Errorf("pubkey length = %d, want 33 (compressed)", len(w.PublicKey))
	}
}

func TestGenerate(t *testing.T) {
	w, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if w.Address == "" {
		t.Error("generated wallet has empty address")
	}
	if w.WIF == "" {
		t.Error("generated wallet has empty WIF")
	}
	if w.PrivateKey == nil {
		t.Error("generated wallet has nil private key")
	}
	if len(w.PublicKey) != 33 {
		t.Errorf("pubkey length = %d, want 33 (compressed)", len(w.PublicKey))
	}
	if !strings.HasPrefix(w.Address, "1") {
		t.Errorf("generated address %s doesn't start with '1'", w.Address)
	}
	t.Logf("Generated: address=%s WIF=%s", w.Address, w.WIF)
}

func TestGenerate_Unique(t *testing.T) {
	w1, _ := Generate()
	w2, _ := Generate()
	if w1.Address == w2.Address {
		t.Error("two generated wallets have the same address")
	}
}

func TestSign(t *testing.T) {
	w, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	sig, err := w.Sign([]byte("test data"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sig) == 0 {
		t.Error("signature is empty")
	}
	// DER signature starts with 0x30
	if sig[0] != 0x30 {
		t.Errorf("signature doesn't start with 0x30 (DER), got 0x%02x", sig[0])
	}
}

func TestProve(t *testing.T) {
	w, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := w.Prove([]byte("challenge")); err != nil {
		t.Errorf("Prove: %v", err)
	}
}

func TestLoad_Roundtrip(t *testing.T) {
	// Generate, encode to WIF, load from WIF, compare addresses
	w1, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	w2, err := Load(w1.WIF)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if w1.Address != w2.Address {
		t.Errorf("addresses don't match after roundtrip: %s != %s", w1.Address, w2.Address)
	}
}

func TestLoad_EmptyWIF(t *testing.T) {
	_, err := Load("")
	if err == nil {
		t.Error("expected error for empty WIF")
	}
}

func TestLoad_InvalidWIF(t *testing.T) {
	_, err := Load("notavalidwif")
	if err == nil {
		t.Error("expected error for invalid WIF")
	}
}

func TestKeyConnector_ResolvesToKeyAddress(t *testing.T) {
	wif := "KwdMAjGmerYanjeui5SHS7JkmpZvVipYvB2LJGU1ZxJwYvP98617"
	c, err := NewKeyConnector(wif)
	if err != nil {
		t.Fatalf("NewKeyConnector: %v", err)
	}

	res := <-c.Connect(context.Background())
	if res.Err != nil {
		t.Fatalf("Connect: %v", res.Err)
	}
	if res.Address != "1LoVGDgRs9hTfTNJNuXKSpywcbdvwRXpmK" {
		t.Errorf("address = %s", res.Address)
	}
	if c.Address() != res.Address {
		t.Errorf("Address() = %s, want %s", c.Address(), res.Address)
	}
}

func TestKeyConnector_CancelledContext(t *testing.T) {
	w, _ := Generate()
	c, err := NewKeyConnector(w.WIF)
	if err != nil {
		t.Fatalf("NewKeyConnector: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := <-c.Connect(ctx)
	if res.Err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestNewKeyConnector_InvalidWIF(t *testing.T) {
	if _, err := NewKeyConnector("notavalidwif"); err == nil {
		t.Error("expected error for invalid WIF")
	}
}
