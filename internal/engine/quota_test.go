package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tessellated/extstore/internal/value"
)

func setPair(t *testing.T, st Store, extID, key string, val value.Value) error {
	t.Helper()
	obj := value.NewObject()
	obj.Set(key, val)
	_, err := Set(context.Background(), st, extID, obj)
	return err
}

func TestQuota_MaxItems(t *testing.T) {
	st := newMemStore()

	for i := 1; i <= MaxItems; i++ {
		err := setPair(t, st, "xyz", fmt.Sprintf("key-%d", i), value.String(fmt.Sprintf("value-%d", i)))
		require.NoError(t, err, "key %d of %d should fit", i, MaxItems)
	}

	// The 513th distinct key fails.
	err := setPair(t, st, "xyz", "another", value.String("another"))
	require.Error(t, err)
	assert.True(t, IsQuotaError(err))
	assert.Equal(t, ReasonMaxItems, QuotaReasonOf(err))

	// Updating one of the existing keys still succeeds: the key under
	// update is removed from the working map before the count check.
	err = setPair(t, st, "xyz", "key-1", value.String("replacement"))
	assert.NoError(t, err)
}

func TestQuota_ItemBytesBoundary(t *testing.T) {
	st := newMemStore()

	// Key "k" (1 byte) + quoted string value (len+2 bytes). 8191 total is
	// under the limit, 8192 trips it.
	ok := value.String(strings.Repeat("x", QuotaBytesPerItem-4)) // 1 + 8190 = 8191
	err := setPair(t, st, "xyz", "k", ok)
	assert.NoError(t, err)

	tooBig := value.String(strings.Repeat("x", QuotaBytesPerItem-3)) // 1 + 8191 = 8192
	err = setPair(t, st, "xyz", "k", tooBig)
	require.Error(t, err)
	assert.Equal(t, ReasonItemBytes, QuotaReasonOf(err))
}

func TestQuota_KeyLengthCountsAgainstItemBytes(t *testing.T) {
	st := newMemStore()

	// A value 5 bytes under the limit counts as 3 under once its quotes
	// are added; a 1-byte key fits, a 4-byte key does not.
	val := value.String(strings.Repeat("x", QuotaBytesPerItem-5))

	err := setPair(t, st, "xyz", "x", val)
	assert.NoError(t, err)

	err = setPair(t, st, "xyz", "xxxx", val)
	require.Error(t, err)
	assert.True(t, IsQuotaError(err))
	assert.Equal(t, ReasonItemBytes, QuotaReasonOf(err))
}

func TestQuota_TotalBytes(t *testing.T) {
	st := newMemStore()
	ctx := context.Background()

	_, err := Set(ctx, st, "xyz", value.MustParse(`{"keep":"me"}`))
	require.NoError(t, err)
	before := st.records["xyz"]

	// 13 items of ~8KB each stay under the per-item limit but push the
	// serialized record past QuotaBytes.
	big := value.NewObject()
	for i := 0; i < 13; i++ {
		big.Set(fmt.Sprintf("k%02d", i), value.String(strings.Repeat("z", 8000)))
	}
	_, err = Set(ctx, st, "xyz", big)
	require.Error(t, err)
	assert.Equal(t, ReasonTotalBytes, QuotaReasonOf(err))

	// Atomicity: the partially-mutated working copy was discarded.
	assert.Equal(t, before, st.records["xyz"])
}

func TestQuota_FailureMidwayPersistsNothing(t *testing.T) {
	st := newMemStore()
	ctx := context.Background()

	_, err := Set(ctx, st, "xyz", value.MustParse(`{"a":"old"}`))
	require.NoError(t, err)

	// First key is fine, second trips ItemBytes; neither may land.
	incoming := value.NewObject()
	incoming.Set("a", value.String("new"))
	incoming.Set("b", value.String(strings.Repeat("x", QuotaBytesPerItem)))
	_, err = Set(ctx, st, "xyz", incoming)
	require.Error(t, err)
	assert.Equal(t, ReasonItemBytes, QuotaReasonOf(err))

	got, err := Get(ctx, st, "xyz", nil)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"old"}`, encodeJSON(t, got))
}

func TestQuotaError_Matching(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &QuotaError{Reason: ReasonMaxItems, ExtensionID: "x", Key: "k"})
	assert.True(t, IsQuotaError(err))
	assert.Equal(t, ReasonMaxItems, QuotaReasonOf(err))

	assert.False(t, IsQuotaError(fmt.Errorf("plain")))
	assert.Equal(t, QuotaReason(""), QuotaReasonOf(fmt.Errorf("plain")))
}
