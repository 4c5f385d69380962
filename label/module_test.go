package label

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSymbolicName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"org.slf4j.api", false},
		{"com.acme.core", false},
		{"single", false},
		{"org.eclipse.swt.gtk.linux.x86_64", false},
		{"with-dash_and_underscore", false},
		{"", true},
		{".leading", true},
		{"trailing.", true},
		{"double..dot", true},
		{"has space", true},
		{"semi;colon", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n, err := NewSymbolicName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, n.String())
			assert.False(t, n.IsEmpty())
		})
	}
}

func TestMustSymbolicName_Panics(t *testing.T) {
	assert.Panics(t, func() { MustSymbolicName("bad name") })
}

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		input        string
		wantName     string
		wantRange    string
		wantOptional bool
		wantErr      bool
	}{
		{"org.slf4j.api", "org.slf4j.api", "", false, false},
		{"org.slf4j.api;version=[1.5,2.0)", "org.slf4j.api", "[1.5,2.0)", false, false},
		{`org.slf4j.api;bundle-version="1.5"`, "org.slf4j.api", "1.5", false, false},
		{"javax.servlet; version=2.4 ;resolution:=optional", "javax.servlet", "2.4", true, false},
		{"org.osgi.framework;x-internal:=true", "org.osgi.framework", "", false, false},
		{"bad name", "", "", false, true},
		{"org.slf4j.api;version=[2.0,1.0)", "", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			req, err := ParseRequirement(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, req.Name.String())
			assert.Equal(t, tt.wantRange, req.Range.String())
			assert.Equal(t, tt.wantOptional, req.Optional)
		})
	}
}

func TestRequirement_String(t *testing.T) {
	req, err := ParseRequirement("javax.servlet;version=[2.4,3.0);resolution:=optional")
	require.NoError(t, err)
	assert.Equal(t, "javax.servlet;version=[2.4,3.0);resolution:=optional", req.String())
}
