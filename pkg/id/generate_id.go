package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 mints a random 32-character lowercase hex identifier. Every
// public id in the API (sessions, transactions, payments, approval
// requests, payroll cycles and items) comes from here, so the length
// matches the hex32 validation on inbound path parameters.
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
