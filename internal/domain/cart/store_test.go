package cart

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
)

func newProduct(name string) catalog.Product {
	return catalog.Product{ID: uuid.New(), Name: name}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "p1__M__Red", Key("p1", "M", "Red"))
	assert.Equal(t, "p1____", Key("p1", "", ""))
	assert.Equal(t, Key("p1", "", ""), Key("p1", "", ""))
	assert.NotEqual(t, Key("p1", "M", "Red"), Key("p1", "L", "Red"))
	assert.NotEqual(t, Key("p1", "M", ""), Key("p1", "", "M"))
}

func TestParseKey(t *testing.T) {
	parts, err := ParseKey("p1__M__Red")
	require.NoError(t, err)
	assert.Equal(t, KeyParts{ProductID: "p1", Size: "M", Feature: "Red"}, parts)
	assert.Equal(t, "p1__M__Red", parts.String())

	parts, err = ParseKey("p1____")
	require.NoError(t, err)
	assert.Equal(t, KeyParts{ProductID: "p1"}, parts)

	parts, err = ParseKey("p1__M__Black__White")
	require.NoError(t, err)
	assert.Equal(t, "Black__White", parts.Feature)
	assert.Equal(t, "p1__M__Black__White", parts.String())

	parts, err = ParseKey(Key("p1", "M", "Black/White"))
	require.NoError(t, err)
	assert.Equal(t, "Black/White", parts.Feature)

	for _, bad := range []string{"", "p1", "p1__M", "__M__Red"} {
		_, err := ParseKey(bad)
		assert.ErrorIs(t, err, ErrMalformedKey, bad)
	}
}

func TestStore_AddMergesSameIdentity(t *testing.T) {
	s := NewStore()
	p := newProduct("Widget")

	k1 := s.Add(p, 2, "M", "Red")
	k2 := s.Add(p, 3, "M", "Red")

	assert.Equal(t, k1, k2)
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, s.TotalItems())
}

func TestStore_AddDistinctVariantsAppend(t *testing.T) {
	s := NewStore()
	p := newProduct("Widget")

	s.Add(p, 1, "M", "Red")
	s.Add(p, 1, "L", "Red")
	s.Add(p, 1, "", "")

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "M", items[0].SelectedSize)
	assert.Equal(t, "L", items[1].SelectedSize)
	assert.Empty(t, items[2].SelectedSize)
}

func TestStore_MergeKeepsPosition(t *testing.T) {
	s := NewStore()
	a, b := newProduct("A"), newProduct("B")

	s.Add(a, 1, "", "")
	s.Add(b, 1, "", "")
	s.Add(a, 4, "", "")

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Product.Name)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "B", items[1].Product.Name)
}

func TestStore_AddClampsQuantity(t *testing.T) {
	s := NewStore()
	p := newProduct("Widget")

	s.Add(p, 0, "", "")
	s.Add(p, -7, "", "")

	assert.Equal(t, 2, s.TotalItems())
}

func TestStore_QuantityIsCapped(t *testing.T) {
	s := NewStore()
	p := newProduct("Widget")

	key := s.Add(p, math.MaxInt, "", "")
	s.Add(p, 1, "", "")
	assert.Equal(t, MaxQuantity, s.Items()[0].Quantity)

	s.Add(newProduct("Gadget"), MaxQuantity, "", "")
	s.Add(newProduct("Gizmo"), MaxQuantity, "", "")
	assert.Equal(t, 3*MaxQuantity, s.TotalItems())

	s.UpdateQuantity(key, math.MaxInt)
	assert.Equal(t, MaxQuantity, s.Items()[0].Quantity)

	s.UpdateQuantity(key, MaxQuantity-1)
	s.Add(p, MaxQuantity-1, "", "")
	assert.Equal(t, MaxQuantity, s.Items()[0].Quantity)
}

func TestStore_Remove(t *testing.T) {
	s := NewStore()
	p := newProduct("Widget")
	key := s.Add(p, 2, "M", "")

	s.Remove("missing__x__y")
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, s.TotalItems())

	s.Remove(key)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.TotalItems())
}

func TestStore_UpdateQuantity(t *testing.T) {
	s := NewStore()
	a, b := newProduct("A"), newProduct("B")
	ka := s.Add(a, 1, "", "")
	kb := s.Add(b, 1, "", "")

	s.UpdateQuantity(ka, 7)
	items := s.Items()
	assert.Equal(t, "A", items[0].Product.Name)
	assert.Equal(t, 7, items[0].Quantity)

	s.UpdateQuantity("missing____", 3)
	assert.Equal(t, 8, s.TotalItems())

	s.UpdateQuantity(ka, 0)
	assert.Equal(t, 1, s.Len())

	s.UpdateQuantity(kb, -5)
	assert.Equal(t, 0, s.Len())
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.Add(newProduct("A"), 3, "", "")
	s.Clear()
	assert.Empty(t, s.Items())
	assert.Equal(t, 0, s.TotalItems())
}

func TestStore_TotalItemsTracksOperations(t *testing.T) {
	s := NewStore()
	a, b := newProduct("A"), newProduct("B")

	ka := s.Add(a, 2, "S", "")
	s.Add(b, 3, "", "Blue")
	s.Add(a, 1, "S", "")
	s.UpdateQuantity(ka, 10)
	s.Add(b, 1, "", "Green")
	s.Remove(Key(b.ID.String(), "", "Blue"))

	sum := 0
	for _, item := range s.Items() {
		sum += item.Quantity
	}
	assert.Equal(t, sum, s.TotalItems())
	assert.Equal(t, 11, s.TotalItems())
}

func TestStore_ItemsIsACopy(t *testing.T) {
	s := NewStore()
	s.Add(newProduct("A"), 1, "", "")

	items := s.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, s.TotalItems())
}

func TestStore_SnapshotKeepsProductAtAddTime(t *testing.T) {
	s := NewStore()
	p := newProduct("Original")
	s.Add(p, 1, "", "")

	p.Name = "Renamed"
	s.Add(p, 1, "", "")

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Original", items[0].Product.Name)
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := NewStore()
	p := newProduct("Widget")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(p, 1, "M", "Red")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 50, s.TotalItems())
}

func TestRestore(t *testing.T) {
	s := NewStore()
	s.Add(newProduct("A"), 2, "M", "")

	restored := Restore(s.Snapshot())
	assert.Equal(t, s.Items(), restored.Items())
	assert.False(t, restored.Snapshot().CreatedAt.IsZero())
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	assert.Panics(t, func() {
		MustFromContext(context.Background())
	})

	s := NewStore()
	ctx := NewContext(context.Background(), s)
	assert.Same(t, s, MustFromContext(ctx))
}
