package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadscollection/storefront/internal/cart"
)

// failingSlot errors on every operation.
type failingSlot struct{}

func (failingSlot) Read(ctx context.Context) ([]byte, bool, error) {
	return nil, false, errors.New("storage disabled")
}
func (failingSlot) Write(ctx context.Context, data []byte) error {
	return errors.New("storage disabled")
}
func (failingSlot) Delete(ctx context.Context) error {
	return errors.New("storage disabled")
}

func testLine(id int, size string, price float64) cart.Line {
	return cart.Normalize(cart.Line{ID: cart.FlexInt(id), SelectedSize: size, Price: cart.FlexFloat(price)})
}

// ============================================
// Load Tests
// ============================================

func TestAdapter_RoundTrip(t *testing.T) {
	adapter := NewAdapter(NewMemorySlot())
	ctx := context.Background()

	lines := []cart.Line{
		testLine(7, "Small", 19.99),
		testLine(7, "Large", 30),
		testLine(8, "Medium", 5.01),
	}

	require.NoError(t, adapter.Save(ctx, lines))
	assert.Equal(t, lines, adapter.Load(ctx))
}

func TestAdapter_Load_AbsentSlotYieldsEmptyCart(t *testing.T) {
	adapter := NewAdapter(NewMemorySlot())

	assert.Empty(t, adapter.Load(context.Background()))
}

func TestAdapter_Load_CorruptPayloadYieldsEmptyCart(t *testing.T) {
	slot := NewMemorySlot()
	ctx := context.Background()
	require.NoError(t, slot.Write(ctx, []byte("not json")))

	adapter := NewAdapter(slot)

	assert.Empty(t, adapter.Load(ctx))
}

func TestAdapter_Load_NonArrayPayloadYieldsEmptyCart(t *testing.T) {
	slot := NewMemorySlot()
	ctx := context.Background()
	require.NoError(t, slot.Write(ctx, []byte(`{"id":7}`)))

	adapter := NewAdapter(slot)

	assert.Empty(t, adapter.Load(ctx))
}

func TestAdapter_Load_UnreadableSlotYieldsEmptyCart(t *testing.T) {
	adapter := NewAdapter(failingSlot{})

	assert.Empty(t, adapter.Load(context.Background()))
}

func TestAdapter_Load_BackfillsMissingCartID(t *testing.T) {
	// Payload written before the cartId field existed.
	slot := NewMemorySlot()
	ctx := context.Background()
	require.NoError(t, slot.Write(ctx, []byte(`[{"id":7,"title":"Tee","price":20}]`)))

	lines := NewAdapter(slot).Load(ctx)

	require.Len(t, lines, 1)
	assert.Equal(t, "7-Medium", lines[0].CartID)
	assert.Equal(t, "Medium", lines[0].SelectedSize)
}

func TestAdapter_Load_CoercesNumericStrings(t *testing.T) {
	slot := NewMemorySlot()
	ctx := context.Background()
	require.NoError(t, slot.Write(ctx, []byte(`[{"id":"7","price":"19.99","category_id":"2","stock":"3"}]`)))

	lines := NewAdapter(slot).Load(ctx)

	require.Len(t, lines, 1)
	assert.Equal(t, cart.FlexInt(7), lines[0].ID)
	assert.Equal(t, cart.FlexFloat(19.99), lines[0].Price)
	assert.Equal(t, cart.FlexInt(2), lines[0].CategoryID)
	assert.Equal(t, cart.FlexInt(3), lines[0].Stock)
}

// ============================================
// Save / Clear Tests
// ============================================

func TestAdapter_Save_NilCartWritesEmptyArray(t *testing.T) {
	slot := NewMemorySlot()
	ctx := context.Background()

	require.NoError(t, NewAdapter(slot).Save(ctx, nil))

	data, ok, err := slot.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(data))
}

func TestAdapter_Save_SurfacesSlotFailure(t *testing.T) {
	adapter := NewAdapter(failingSlot{})

	err := adapter.Save(context.Background(), []cart.Line{testLine(7, "Medium", 20)})

	assert.Error(t, err)
}

func TestAdapter_Clear(t *testing.T) {
	slot := NewMemorySlot()
	adapter := NewAdapter(slot)
	ctx := context.Background()

	require.NoError(t, adapter.Save(ctx, []cart.Line{testLine(7, "Medium", 20)}))
	require.NoError(t, adapter.Clear(ctx))

	_, ok, err := slot.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdapter_Clear_SurfacesSlotFailure(t *testing.T) {
	assert.Error(t, NewAdapter(failingSlot{}).Clear(context.Background()))
}
