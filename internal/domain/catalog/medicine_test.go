package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMedicine(t *testing.T) {
	manufacturerID := uuid.New()

	t.Run("valid medicine", func(t *testing.T) {
		m, err := NewMedicine("Amoxicillin", "500mg", FormCapsule, manufacturerID)
		require.NoError(t, err)
		assert.Equal(t, "Amoxicillin", m.Name)
		assert.Equal(t, "500mg", m.Strength)
		assert.Equal(t, FormCapsule, m.Form)
		assert.Equal(t, manufacturerID, m.ManufacturerID)
		assert.True(t, m.Active)
		assert.NotEqual(t, uuid.Nil, m.GetID())
	})

	t.Run("empty name rejected", func(t *testing.T) {
		_, err := NewMedicine("  ", "500mg", FormTablet, manufacturerID)
		assert.Error(t, err)
	})

	t.Run("invalid form rejected", func(t *testing.T) {
		_, err := NewMedicine("Paracetamol", "500mg", MedicineForm("Gas"), manufacturerID)
		assert.Error(t, err)
	})

	t.Run("missing manufacturer rejected", func(t *testing.T) {
		_, err := NewMedicine("Paracetamol", "500mg", FormTablet, uuid.Nil)
		assert.Error(t, err)
	})
}

func TestMedicine_DisplayName(t *testing.T) {
	m, err := NewMedicine("Paracetamol", "500mg", FormTablet, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol 500mg", m.DisplayName())

	m.Strength = ""
	assert.Equal(t, "Paracetamol", m.DisplayName())
}

func TestMedicine_Deactivate(t *testing.T) {
	m, err := NewMedicine("Ibuprofen", "400mg", FormTablet, uuid.New())
	require.NoError(t, err)

	version := m.GetVersion()
	m.Deactivate()
	assert.False(t, m.Active)
	assert.Equal(t, version+1, m.GetVersion())

	m.Activate()
	assert.True(t, m.Active)
}

func TestNewManufacturer(t *testing.T) {
	m, err := NewManufacturer("Emzor Pharmaceutical", "Nigeria")
	require.NoError(t, err)
	assert.Equal(t, "Emzor Pharmaceutical", m.Name)
	assert.Equal(t, "Nigeria", m.Country)

	_, err = NewManufacturer("", "Nigeria")
	assert.Error(t, err)
}
