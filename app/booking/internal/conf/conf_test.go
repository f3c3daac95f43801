package conf

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDurationUnmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		err  bool
	}{
		{in: `"3s"`, want: 3 * time.Second},
		{in: `"150ms"`, want: 150 * time.Millisecond},
		{in: `""`, want: 0},
		{in: `1000000000`, want: time.Second},
		{in: `"soon"`, err: true},
		{in: `true`, err: true},
	}
	for _, tt := range tests {
		var d Duration
		err := json.Unmarshal([]byte(tt.in), &d)
		if tt.err {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, d.Duration, tt.in)
	}
}

func TestBootstrapDecode(t *testing.T) {
	raw := `{"server":{"http":{"addr":":8000","timeout":"3s"}},
		"data":{"driver":"badger","persist_timeout":"2s","badger":{"dir":"/tmp/x"}},
		"auth":{"jwt_secret":"s","token_ttl":"24h","bcrypt_cost":10}}`
	var bc Bootstrap
	require.NoError(t, json.Unmarshal([]byte(raw), &bc))
	assert.Equal(t, ":8000", bc.Server.HTTP.Addr)
	assert.Equal(t, 3*time.Second, bc.Server.HTTP.Timeout.Duration)
	assert.Equal(t, "badger", bc.Data.Driver)
	assert.Equal(t, "/tmp/x", bc.Data.Badger.Dir)
	assert.Equal(t, 24*time.Hour, bc.Auth.TokenTTL.Duration)
	assert.Equal(t, 10, bc.Auth.BcryptCost)
}
