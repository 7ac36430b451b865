package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// Máquina de estados del traslado: PENDING -> IN_TRANSIT -> COMPLETED,
// PENDING -> COMPLETED (recepción directa), PENDING -> CANCELLED.
func TestTransferCanTransition(t *testing.T) {
	cases := []struct {
		from string
		to   string
		want bool
	}{
		{entity.TransferStatusPENDING, entity.TransferStatusInTransit, true},
		{entity.TransferStatusPENDING, entity.TransferStatusCOMPLETED, true},
		{entity.TransferStatusPENDING, entity.TransferStatusCANCELLED, true},
		{entity.TransferStatusInTransit, entity.TransferStatusCOMPLETED, true},
		// IN_TRANSIT no admite cancelación: la mercancía ya salió de la sede.
		{entity.TransferStatusInTransit, entity.TransferStatusCANCELLED, false},
		{entity.TransferStatusInTransit, entity.TransferStatusPENDING, false},
		{entity.TransferStatusCOMPLETED, entity.TransferStatusCANCELLED, false},
		{entity.TransferStatusCOMPLETED, entity.TransferStatusPENDING, false},
		{entity.TransferStatusCANCELLED, entity.TransferStatusCOMPLETED, false},
		{entity.TransferStatusCANCELLED, entity.TransferStatusInTransit, false},
	}
	for _, tc := range cases {
		tr := &entity.Transfer{Status: tc.from}
		assert.Equal(t, tc.want, tr.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTransferIsDeletable(t *testing.T) {
	assert.True(t, (&entity.Transfer{Status: entity.TransferStatusPENDING}).IsDeletable())
	assert.False(t, (&entity.Transfer{Status: entity.TransferStatusCOMPLETED}).IsDeletable(),
		"un traslado completado ya escribió en el libro y no se puede eliminar")
}
