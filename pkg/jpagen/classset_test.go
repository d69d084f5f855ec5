package jpagen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ethlo/jpagen/pkg/jpagen"
)

func TestClassSet_AddReportsNewNames(t *testing.T) {
	s := jpagen.NewClassSet("com.a.Foo")

	assert.False(t, s.Add("com.a.Foo"))
	assert.True(t, s.Add("com.a.Bar"))
	assert.Equal(t, 2, s.Len())
}

func TestClassSet_Difference(t *testing.T) {
	discovered := jpagen.NewClassSet("com.a.Foo", "com.a.Bar", "com.a.Baz")
	defined := jpagen.NewClassSet("com.a.Foo", "com.a.Stale")

	diff := discovered.Difference(defined)

	assert.Equal(t, []string{"com.a.Bar", "com.a.Baz"}, diff.Sorted())
	assert.Equal(t, 3, discovered.Len(), "receiver must not be modified")
	assert.Equal(t, 2, defined.Len(), "argument must not be modified")
}

func TestClassSet_CaseSensitive(t *testing.T) {
	s := jpagen.NewClassSet("com.a.Foo")

	assert.False(t, s.Contains("com.a.foo"))
	assert.False(t, s.Contains("com.a.Foo$Inner"))
}

func TestClassSet_SortedIsAscending(t *testing.T) {
	s := jpagen.NewClassSet("com.b.A", "com.a.Z", "com.a.B$Inner", "com.a.B")

	assert.Equal(t, []string{"com.a.B", "com.a.B$Inner", "com.a.Z", "com.b.A"}, s.Sorted())
}

func TestClassSet_CloneIsIndependent(t *testing.T) {
	s := jpagen.NewClassSet("com.a.Foo")
	c := s.Clone()
	c.Add("com.a.Bar")

	assert.False(t, s.Contains("com.a.Bar"))
	assert.Zero(t, s.Difference(c).Len())
	assert.Equal(t, []string{"com.a.Bar"}, c.Difference(s).Sorted())
}
