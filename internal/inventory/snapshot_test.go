package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReplaceIsWholesale(t *testing.T) {
	var store Store
	assert.Nil(t, store.Current())

	first := NewSnapshot([]PoolRecord{{Name: "tank"}, {Name: "importing"}}, nil)
	assert.Nil(t, store.Replace(first))

	second := NewSnapshot([]PoolRecord{{Name: "tank"}}, nil)
	prev := store.Replace(second)
	assert.Same(t, first, prev)

	cur := store.Current()
	require.NotNil(t, cur)
	_, ok := cur.Pool("importing")
	assert.False(t, ok, "a pool absent from the new listing must disappear")
	_, ok = cur.Pool("tank")
	assert.True(t, ok)
}

func TestSizeBytes(t *testing.T) {
	tests := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{in: "10G", want: 10 << 30, wantOK: true},
		{in: "512M", want: 512 << 20, wantOK: true},
		{in: "1024", want: 1024, wantOK: true},
		{in: "-", wantOK: false},
		{in: "", wantOK: false},
		{in: "lots", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := SizeBytes(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFragRatio(t *testing.T) {
	got, ok := FragRatio("12%")
	assert.True(t, ok)
	assert.InDelta(t, 0.12, got, 1e-9)

	_, ok = FragRatio("-")
	assert.False(t, ok)

	_, ok = FragRatio("n/a")
	assert.False(t, ok)
}
