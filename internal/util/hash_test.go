package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashSecret(t *testing.T) {
	digest, err := HashSecret("ls -la")
	require.NoError(t, err)
	assert.NotEqual(t, "ls -la", digest)

	assert.True(t, VerifySecret("ls -la", digest))
	assert.False(t, VerifySecret("ls -a", digest))
	// 逐字节比对，大小写和空白都算数
	assert.False(t, VerifySecret("LS -LA", digest))
	assert.False(t, VerifySecret("ls -la ", digest))
	assert.False(t, VerifySecret("", digest))
}

func TestHashSecret_DistinctDigests(t *testing.T) {
	first, err := HashSecret("same-secret")
	require.NoError(t, err)
	second, err := HashSecret("same-secret")
	require.NoError(t, err)

	// 盐不同，摘要不同，但都能验证通过
	assert.NotEqual(t, first, second)
	assert.True(t, VerifySecret("same-secret", first))
	assert.True(t, VerifySecret("same-secret", second))
}

func TestVerifySecret_MalformedDigest(t *testing.T) {
	assert.False(t, VerifySecret("anything", "not-a-bcrypt-digest"))
	assert.False(t, VerifySecret("anything", ""))
}
