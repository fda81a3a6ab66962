// Package identity derives stable document identifiers from canonical
// source URLs. The checksum sits behind a small interface so the algorithm
// can be swapped without touching the index logic.
package identity

import (
	"hash/crc64"
	"net/url"

	apperrors "github.com/absearch/absearch/internal/errors"
	"github.com/absearch/absearch/model"
)

// Deriver maps a canonical URL string to a DocumentID. Implementations must
// be deterministic: the same input always yields the same id.
type Deriver interface {
	DeriveID(canonicalURL string) model.DocumentID
}

// CRC64Deriver derives identifiers with the CRC-64 checksum (ECMA
// polynomial) over the UTF-8 bytes of the canonical URL string.
type CRC64Deriver struct {
	table *crc64.Table
}

// NewCRC64Deriver creates a CRC64Deriver.
func NewCRC64Deriver() *CRC64Deriver {
	return &CRC64Deriver{table: crc64.MakeTable(crc64.ECMA)}
}

// DeriveID implements Deriver.
func (d *CRC64Deriver) DeriveID(canonicalURL string) model.DocumentID {
	return model.DocumentID(crc64.Checksum([]byte(canonicalURL), d.table))
}

// Canonicalize parses raw and returns its normalized string form, the input
// to id derivation. A URL that cannot be parsed, or that lacks a scheme or
// host, yields a MalformedURLError.
func Canonicalize(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", apperrors.NewMalformedURLError(raw, err.Error())
	}
	if u.Scheme == "" || u.Host == "" {
		return "", apperrors.NewMalformedURLError(raw, "missing scheme or host")
	}
	return u.String(), nil
}
