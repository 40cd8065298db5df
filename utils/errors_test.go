package utils

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/ztrue/tracerr"
	"testing"
)

func TestErrors(t *testing.T) {
	t.Run("KitError", func(t *testing.T) {
		// Create errors
		KitError1 := NewKitError("TEST_ERROR_1", "KitError1")
		KitError2 := NewKitError("TEST_ERROR_2", "KitError2")

		// Instantiate errors
		kitError1a := KitError1.AddDetails("a")
		kitError1b := KitError1.AddDetails("b")
		kitError2a := KitError2.AddDetails("a")

		assert.ErrorIs(t, kitError1a, KitError1)  // proper use of Is
		assert.ErrorIs(t, kitError1a, kitError1b) // weird use of Is
		assert.NotErrorIs(t, kitError1a, KitError2)
		assert.NotErrorIs(t, kitError1a, kitError2a)

		assert.Equal(t, "TEST_ERROR_1 - KitError1 : a", kitError1a.Error())
		assert.Equal(t, "TEST_ERROR_1 - KitError1", KitError1.Error())

		assert.NotErrorIs(t, kitError1a, errors.New("KitError1"))

		assert.Panics(t, func() {
			_ = kitError1a.AddDetails("again")
		})

		_ = NewKitError("TEST_DUPLICATE_ERROR", "duplicate error")
		assert.Panics(t, func() {
			_ = NewKitError("TEST_DUPLICATE_ERROR", "duplicate error")
		})
	})
	t.Run("Wrapped KitError", func(t *testing.T) {
		KitError3 := NewKitError("TEST_ERROR_3", "KitError3")
		wrapped := tracerr.Wrap(KitError3.AddDetails("deep"))
		assert.ErrorIs(t, wrapped, KitError3)
		assert.Equal(t, "TEST_ERROR_3 - KitError3 : deep", wrapped.Error())
	})
}
