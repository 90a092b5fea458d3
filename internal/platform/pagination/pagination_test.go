package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParams(t *testing.T) {
	pg := New(10, 50)

	tests := []struct {
		name    string
		query   string
		want    Params
		wantErr bool
		offset  int
	}{
		{name: "defaults", query: "", want: Params{Page: 1, Size: 10}, offset: 0},
		{name: "page 3", query: "?page=3", want: Params{Page: 3, Size: 10}, offset: 20},
		{name: "page size capped", query: "?page=2&page_size=500", want: Params{Page: 2, Size: 50}, offset: 50},
		{name: "bad page size ignored", query: "?page_size=abc", want: Params{Page: 1, Size: 10}, offset: 0},
		{name: "page zero", query: "?page=0", wantErr: true},
		{name: "page not a number", query: "?page=last", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/pets/"+tt.query, nil)
			got, err := pg.Params(r)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.offset, got.Offset())
			assert.Equal(t, tt.want.Size, got.Limit())
		})
	}
}

func TestNewPage_Links(t *testing.T) {
	r := httptest.NewRequest("GET", "http://api.local/pets/?trait=loyal&page=2", nil)

	p, err := NewPage(r, Params{Page: 2, Size: 2}, 5, []string{"c", "d"})
	require.NoError(t, err)

	assert.Equal(t, 5, p.Count)
	require.NotNil(t, p.Next)
	require.NotNil(t, p.Previous)
	assert.Equal(t, "http://api.local/pets/?page=3&trait=loyal", *p.Next)
	assert.Equal(t, "http://api.local/pets/?trait=loyal", *p.Previous)
}

func TestNewPage_LastAndEmpty(t *testing.T) {
	r := httptest.NewRequest("GET", "http://api.local/pets/", nil)

	p, err := NewPage[string](r, Params{Page: 1, Size: 10}, 0, nil)
	require.NoError(t, err)
	assert.Nil(t, p.Next)
	assert.Nil(t, p.Previous)
	assert.NotNil(t, p.Results)
	assert.Empty(t, p.Results)

	_, err = NewPage[string](r, Params{Page: 2, Size: 10}, 0, nil)
	require.ErrorIs(t, err, ErrInvalidPage)

	_, err = NewPage[string](r, Params{Page: 4, Size: 2}, 5, nil)
	require.ErrorIs(t, err, ErrInvalidPage)
}

func TestNewPage_ForwardedProto(t *testing.T) {
	r := httptest.NewRequest("GET", "http://api.local/pets/", nil)
	r.Header.Set("X-Forwarded-Proto", "HTTPS")

	p, err := NewPage(r, Params{Page: 1, Size: 1}, 2, []int{1})
	require.NoError(t, err)
	require.NotNil(t, p.Next)
	assert.Equal(t, "https://api.local/pets/?page=2", *p.Next)
}
