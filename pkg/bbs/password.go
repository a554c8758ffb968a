package bbs

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2Params mirrors the conservative defaults the original system
// used (Argon2::default() in the Rust argon2 crate): 19 MiB memory,
// 2 passes, 1 degree of parallelism.
type argon2Params struct {
	memoryKiB  uint32
	iterations uint32
	parallel   uint8
	saltLen    uint32
	keyLen     uint32
}

func defaultArgon2Params() argon2Params {
	return argon2Params{memoryKiB: 19 * 1024, iterations: 2, parallel: 1, saltLen: 16, keyLen: 32}
}

// hashPassword returns a PHC-style encoded Argon2id hash:
// $argon2id$v=19$m=<mem>,t=<iter>,p=<par>$<salt-b64>$<hash-b64>
func hashPassword(password string, p argon2Params) (string, error) {
	salt := make([]byte, p.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password), salt, p.iterations, p.memoryKiB, p.parallel, p.keyLen)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		p.memoryKiB, p.iterations, p.parallel,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// verifyPassword checks password against an encoded hash produced by
// hashPassword, using a constant-time comparison of the derived keys.
func verifyPassword(password, encoded string) bool {
	parts := strings.Split(encoded, "$")
	// ["", "argon2id", "v=19", "m=..,t=..,p=..", "salt", "hash"]
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}
	var mem, iter uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iter, &par); err != nil {
		return false
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(password), salt, iter, mem, par, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
