package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/RestoStock-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Invariante de signo: cada tipo de movimiento solo admite cantidades con la
// dirección que le corresponde. Cero nunca es válido.
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateQuantitySign(t *testing.T) {
	pos := decimal.NewFromInt(10)
	neg := decimal.NewFromInt(-10)

	cases := []struct {
		name     string
		tipo     string
		quantity decimal.Decimal
		want     bool
	}{
		{"purchase positivo", entity.MovementTypePURCHASE, pos, true},
		{"purchase negativo", entity.MovementTypePURCHASE, neg, false},
		{"waste negativo", entity.MovementTypeWASTE, neg, true},
		{"waste positivo", entity.MovementTypeWASTE, pos, false},
		{"transfer_in positivo", entity.MovementTypeTransferIN, pos, true},
		{"transfer_in negativo", entity.MovementTypeTransferIN, neg, false},
		{"transfer_out negativo", entity.MovementTypeTransferOUT, neg, true},
		{"transfer_out positivo", entity.MovementTypeTransferOUT, pos, false},
		{"sale negativo", entity.MovementTypeSALE, neg, true},
		{"sale positivo", entity.MovementTypeSALE, pos, false},
		{"adjustment positivo", entity.MovementTypeADJUSTMENT, pos, true},
		{"adjustment negativo", entity.MovementTypeADJUSTMENT, neg, true},
		{"tipo desconocido", "REGALO", pos, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, entity.ValidateQuantitySign(tc.tipo, tc.quantity))
		})
	}
}

func TestValidateQuantitySign_CeroSiempreInvalido(t *testing.T) {
	for _, tipo := range []string{
		entity.MovementTypePURCHASE,
		entity.MovementTypeWASTE,
		entity.MovementTypeTransferIN,
		entity.MovementTypeTransferOUT,
		entity.MovementTypeADJUSTMENT,
		entity.MovementTypeSALE,
	} {
		assert.False(t, entity.ValidateQuantitySign(tipo, decimal.Zero),
			"cantidad cero no debe ser válida para %s", tipo)
	}
}

func TestValidMovementType(t *testing.T) {
	assert.True(t, entity.ValidMovementType(entity.MovementTypePURCHASE))
	assert.True(t, entity.ValidMovementType(entity.MovementTypeSALE))
	assert.False(t, entity.ValidMovementType("purchase"), "el catálogo distingue mayúsculas")
	assert.False(t, entity.ValidMovementType(""))
}
