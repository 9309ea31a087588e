// Package certinfo derives the address clients use to reach the daemon from
// its TLS certificate.
package certinfo

import (
	"crypto/x509"
	"encoding/pem"
	"os"
	"strconv"
	"strings"
)

// DefaultCommonName is reported when no certificate name can be read.
const DefaultCommonName = "localhost"

// CommonName returns the subject common name of the first certificate in the
// PEM file at path, or DefaultCommonName on any failure.
func CommonName(path string) string {
	if strings.TrimSpace(path) == "" {
		return DefaultCommonName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultCommonName
	}
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			return DefaultCommonName
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil || cert.Subject.CommonName == "" {
			return DefaultCommonName
		}
		return cert.Subject.CommonName
	}
}

// ShareAddress formats the host:port clients should connect to. The name is
// used verbatim, so an IPv6 common name is not bracketed.
func ShareAddress(certPath string, port uint16) string {
	return CommonName(certPath) + ":" + strconv.Itoa(int(port))
}
