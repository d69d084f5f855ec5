package classfile_test

import (
	"testing"

	"github.com/ethlo/jpagen/internal/classfile"
	"github.com/ethlo/jpagen/internal/classfile/classfiletest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_NameAndSuper(t *testing.T) {
	data := classfiletest.Class{Name: "com.acme.shop.Order", SuperName: "com.acme.shop.Base"}.Bytes()

	info, err := classfile.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "com.acme.shop.Order", info.Name)
	assert.Equal(t, "com.acme.shop.Base", info.SuperName)
	assert.Equal(t, uint16(61), info.MajorVersion)
	assert.Empty(t, info.Annotations)
	assert.False(t, info.IsInterface())
}

func TestParse_NestedClassKeepsDollar(t *testing.T) {
	data := classfiletest.Class{Name: "com.acme.Order$Line"}.Bytes()

	info, err := classfile.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, "com.acme.Order$Line", info.Name)
}

func TestParse_VisibleAndInvisibleAnnotations(t *testing.T) {
	data := classfiletest.Class{
		Name:                 "com.acme.Order",
		Annotations:          []string{"jakarta.persistence.Entity", "jakarta.persistence.Table"},
		InvisibleAnnotations: []string{"lombok.Generated"},
	}.Bytes()

	info, err := classfile.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"jakarta.persistence.Entity", "jakarta.persistence.Table", "lombok.Generated"}, info.Annotations)
	assert.True(t, info.HasAnyAnnotation("javax.persistence.Entity", "jakarta.persistence.Entity"))
	assert.False(t, info.HasAnyAnnotation("jakarta.persistence.Embeddable"))
}

func TestParse_MemberAnnotationsAreIgnored(t *testing.T) {
	data := classfiletest.Class{
		Name:           "com.acme.Order",
		Annotations:    []string{"jakarta.persistence.Id"},
		AnnotatedField: true,
	}.Bytes()

	info, err := classfile.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"jakarta.persistence.Id"}, info.Annotations)
}

func TestParse_Interface(t *testing.T) {
	data := classfiletest.Class{Name: "com.acme.Repo", Flags: classfile.AccPublic | classfile.AccInterface}.Bytes()

	info, err := classfile.Parse(data)
	require.NoError(t, err)
	assert.True(t, info.IsInterface())
}

func TestParse_NotClassFile(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("PK\x03\x04"), []byte("hello world")} {
		_, err := classfile.Parse(data)
		assert.ErrorIs(t, err, classfile.ErrNotClassFile)
	}
}

func TestParse_Truncated(t *testing.T) {
	data := classfiletest.Class{Name: "com.acme.Order", Annotations: []string{"jakarta.persistence.Entity"}}.Bytes()

	for _, n := range []int{8, 12, len(data) / 2, len(data) - 1} {
		_, err := classfile.Parse(data[:n])
		assert.Error(t, err, "prefix of %d bytes", n)
	}
}

func TestParse_InvalidConstantTag(t *testing.T) {
	data := []byte{
		0xCA, 0xFE, 0xBA, 0xBE,
		0x00, 0x00, 0x00, 0x3D,
		0x00, 0x02, // one entry
		0x63, // bogus tag
	}

	_, err := classfile.Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid constant pool tag")
}

func BenchmarkParse(b *testing.B) {
	data := classfiletest.Class{
		Name:        "com.acme.shop.Order",
		Annotations: []string{"jakarta.persistence.Entity", "jakarta.persistence.Table"},
	}.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = classfile.Parse(data)
	}
}
