package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVersion(t *testing.T) {
	tests := []struct {
		input         string
		wantErr       bool
		wantMajor     uint64
		wantMinor     uint64
		wantMicro     uint64
		wantQualifier string
	}{
		{"1.0.0", false, 1, 0, 0, ""},
		{"1.5.8", false, 1, 5, 8, ""},
		{"3.6.0.v20100517", false, 3, 6, 0, "v20100517"},
		{"2.1", false, 2, 1, 0, ""},
		{"4", false, 4, 0, 0, ""},
		{"1.0.0.I2009-final_1", false, 1, 0, 0, "I2009-final_1"},
		{"", false, 0, 0, 0, ""},
		// Invalid formats
		{"1.0.0.", true, 0, 0, 0, ""},
		{"v1.0.0", true, 0, 0, 0, ""},
		{"1..0", true, 0, 0, 0, ""},
		{"abc", true, 0, 0, 0, ""},
		{"1.0.0.q.x", true, 0, 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := NewVersion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMajor, v.Major())
			assert.Equal(t, tt.wantMinor, v.Minor())
			assert.Equal(t, tt.wantMicro, v.Micro())
			assert.Equal(t, tt.wantQualifier, v.Qualifier())
			assert.Equal(t, tt.input, v.String())
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0", "1.0.0", 0},
		{"1.0.1", "1.0.0", 1},
		{"1.9.0", "1.10.0", -1},
		{"2.0.0", "1.99.99", 1},
		{"1.0.0.a", "1.0.0", 1},
		{"1.0.0.a", "1.0.0.b", -1},
		{"", "0.0.0", -1},
		{"", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			got := MustVersion(tt.a).Compare(MustVersion(tt.b))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, -tt.want, MustVersion(tt.b).Compare(MustVersion(tt.a)))
		})
	}
}

func TestCompareStrings(t *testing.T) {
	assert.Equal(t, 1, CompareStrings("1.1", "1.0.9"))
	assert.Equal(t, -1, CompareStrings("not-a-version", "0.0.1"))
	assert.Equal(t, 1, CompareStrings("0.0.1", "not-a-version"))
	assert.Equal(t, -1, CompareStrings("aaa", "bbb"))
}

func TestNewRange(t *testing.T) {
	tests := []struct {
		input string
		in    []string
		out   []string
	}{
		{"", []string{"0.0.0", "99.0"}, nil},
		{"1.5", []string{"1.5", "1.5.0.x", "3.0"}, []string{"1.4.9"}},
		{"[1.0,2.0)", []string{"1.0", "1.9.9.z"}, []string{"0.9", "2.0"}},
		{"(1.0,2.0]", []string{"1.0.1", "2.0"}, []string{"1.0", "2.0.1"}},
		{"[1.0, 1.0]", []string{"1.0.0"}, []string{"1.0.1", "0.9"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			r, err := NewRange(tt.input)
			require.NoError(t, err)
			for _, v := range tt.in {
				assert.True(t, r.Contains(MustVersion(v)), "%s should contain %s", tt.input, v)
			}
			for _, v := range tt.out {
				assert.False(t, r.Contains(MustVersion(v)), "%s should not contain %s", tt.input, v)
			}
		})
	}
}

func TestNewRange_Invalid(t *testing.T) {
	for _, input := range []string{"[1.0,2.0", "[1.0]", "[2.0,1.0)", "[a,b)", "x.y"} {
		t.Run(input, func(t *testing.T) {
			_, err := NewRange(input)
			assert.Error(t, err)
		})
	}
}
