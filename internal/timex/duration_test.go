package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON_String(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"10h"`), &d))
	assert.Equal(t, 10*time.Hour, d.Std())
}

func TestDuration_UnmarshalJSON_Number(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`1000000000`), &d))
	assert.Equal(t, time.Second, d.Std())
}

func TestDuration_UnmarshalJSON_Invalid(t *testing.T) {
	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`"ten hours"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}

func TestDuration_MarshalRoundTrip(t *testing.T) {
	d := Duration(72 * time.Hour)
	b, err := json.Marshal(d)
	require.NoError(t, err)

	var got Duration
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, d, got)
}
