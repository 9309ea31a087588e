package certinfo_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tenebractl/internal/certinfo"
)

func writeCert(t *testing.T, cn string, prefix []byte) string {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: cn},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	data := append(prefix, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})...)
	path := filepath.Join(t.TempDir(), "cert.pem")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write cert: %v", err)
	}
	return path
}

func TestCommonNameReadsFirstCertificate(t *testing.T) {
	path := writeCert(t, "share.example.net", nil)
	if got := certinfo.CommonName(path); got != "share.example.net" {
		t.Fatalf("unexpected common name %q", got)
	}
}

func TestCommonNameSkipsNonCertificateBlocks(t *testing.T) {
	prefix := pem.EncodeToMemory(&pem.Block{Type: "EC PARAMETERS", Bytes: []byte{0x06, 0x08}})
	path := writeCert(t, "after-params.example.net", prefix)
	if got := certinfo.CommonName(path); got != "after-params.example.net" {
		t.Fatalf("unexpected common name %q", got)
	}
}

func TestCommonNameFallsBackToLocalhost(t *testing.T) {
	garbage := filepath.Join(t.TempDir(), "garbage.pem")
	if err := os.WriteFile(garbage, []byte("not pem"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.pem"), garbage} {
		if got := certinfo.CommonName(path); got != certinfo.DefaultCommonName {
			t.Fatalf("CommonName(%q) = %q", path, got)
		}
	}
}

func TestShareAddress(t *testing.T) {
	path := writeCert(t, "desk.lan", nil)
	if got := certinfo.ShareAddress(path, 8080); got != "desk.lan:8080" {
		t.Fatalf("unexpected address %q", got)
	}
	if got := certinfo.ShareAddress("", 443); got != "localhost:443" {
		t.Fatalf("unexpected fallback address %q", got)
	}
}

func TestShareAddressKeepsColonNamesVerbatim(t *testing.T) {
	path := writeCert(t, "::1", nil)
	if got := certinfo.ShareAddress(path, 8080); got != "::1:8080" {
		t.Fatalf("unexpected address %q", got)
	}
}
