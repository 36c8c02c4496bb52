package generator

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"
	"time"
)

const (
	alphabet      = "0123456789abcdefghijklmnopqrstuvwxyz"
	defaultExt    = "jpg"
	fileSuffixLen = 6
)

func GenerateRandomID(length int) (string, error) {
	result := make([]byte, length)

	for i := 0; i < length; i++ {
		randomIndex, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", err
		}
		result[i] = alphabet[randomIndex.Int64()]
	}

	return string(result), nil
}

// UniqueFilename builds "<unix-ms>-<random>.<ext>" keeping the extension of
// the original name, or "jpg" when it has none.
func UniqueFilename(original string, now time.Time) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(original), ".")
	if ext == "" {
		ext = defaultExt
	}

	suffix, err := GenerateRandomID(fileSuffixLen)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%d-%s.%s", now.UnixMilli(), suffix, strings.ToLower(ext)), nil
}
