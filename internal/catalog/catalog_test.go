package catalog

import (
	"testing"

	"randevu/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServices() []models.Service {
	return []models.Service{
		{Key: "sac-kesimi", Title: "Saç Kesimi", DurationMin: 30, PriceFromTRY: 600},
		{Key: "sakal-kesimi", Title: "Sakal Kesimi", DurationMin: 15, PriceFromTRY: 300},
		{Key: "keratin", Title: "Keratin Bakımı", DurationMin: 60, PriceFromTRY: 2000, PriceToTRY: 3500},
	}
}

func TestNewRejectsInvalidCatalog(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New([]models.Service{{Key: "", Title: "x", DurationMin: 30}})
	assert.Error(t, err)

	_, err = New([]models.Service{{Key: "a", DurationMin: 0}})
	assert.Error(t, err)

	_, err = New([]models.Service{
		{Key: "a", DurationMin: 30},
		{Key: "a", DurationMin: 15},
	})
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	c, err := New(testServices())
	require.NoError(t, err)

	s, ok := c.Get("sac-kesimi")
	assert.True(t, ok)
	assert.Equal(t, "Saç Kesimi", s.Title)

	_, ok = c.Get("manikur")
	assert.False(t, ok)
}

func TestTotalDuration(t *testing.T) {
	c, err := New(testServices())
	require.NoError(t, err)

	t.Run("SingleService", func(t *testing.T) {
		total, err := c.TotalDuration([]string{"sac-kesimi"})
		require.NoError(t, err)
		assert.Equal(t, 30, total)
	})

	t.Run("MultipleServices", func(t *testing.T) {
		total, err := c.TotalDuration([]string{"sac-kesimi", "sakal-kesimi"})
		require.NoError(t, err)
		assert.Equal(t, 45, total)
	})

	t.Run("DuplicateKeysDoubleCount", func(t *testing.T) {
		total, err := c.TotalDuration([]string{"sac-kesimi", "sac-kesimi"})
		require.NoError(t, err)
		assert.Equal(t, 60, total)
	})

	t.Run("UnknownKeyInvalidatesBatch", func(t *testing.T) {
		_, err := c.TotalDuration([]string{"sac-kesimi", "manikur"})
		assert.ErrorIs(t, err, models.ErrUnknownService)
	})

	t.Run("EmptyList", func(t *testing.T) {
		_, err := c.TotalDuration(nil)
		assert.ErrorIs(t, err, models.ErrServiceRequired)
	})
}

func TestListKeepsConfigOrder(t *testing.T) {
	c, err := New(testServices())
	require.NoError(t, err)

	list := c.List()
	require.Len(t, list, 3)
	assert.Equal(t, "sac-kesimi", list[0].Key)
	assert.Equal(t, "sakal-kesimi", list[1].Key)
	assert.Equal(t, "keratin", list[2].Key)
}

func TestFormatPrice(t *testing.T) {
	c, err := New(testServices())
	require.NoError(t, err)

	single, _ := c.Get("sac-kesimi")
	assert.Equal(t, "₺600", FormatPrice(single))

	ranged, _ := c.Get("keratin")
	assert.Equal(t, "₺2.000 – ₺3.500", FormatPrice(ranged))
}
