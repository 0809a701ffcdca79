package diario

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTriagem(t *testing.T) {
	assert.Equal(t, TriagemCritico, StatusTriagem(31, 100))
	assert.Equal(t, TriagemCritico, StatusTriagem(4, 10))

	// 30% exato ainda é atenção: o limite superior é exclusivo
	assert.Equal(t, TriagemAtencao, StatusTriagem(30, 100))
	assert.Equal(t, TriagemAtencao, StatusTriagem(16, 100))

	// 15% exato é normal
	assert.Equal(t, TriagemNormal, StatusTriagem(15, 100))
	assert.Equal(t, TriagemNormal, StatusTriagem(0, 100))

	// sem total não há classificação
	assert.Equal(t, "", StatusTriagem(5, 0))
}

func TestCalcularEficiencia(t *testing.T) {
	assert.Equal(t, 96, CalcularEficiencia(96, 100))
	assert.Equal(t, 50, CalcularEficiencia(1, 2))
	// arredondamento, não truncamento
	assert.Equal(t, 67, CalcularEficiencia(2, 3))
	assert.Equal(t, 33, CalcularEficiencia(1, 3))
}

func TestClassificarEficiencia(t *testing.T) {
	assert.Equal(t, "excelente", ClassificarEficiencia(96))
	assert.Equal(t, "excelente", ClassificarEficiencia(95))
	assert.Equal(t, "bom", ClassificarEficiencia(94))
	assert.Equal(t, "bom", ClassificarEficiencia(85))
	assert.Equal(t, "regular", ClassificarEficiencia(84))
	assert.Equal(t, "regular", ClassificarEficiencia(70))
	assert.Equal(t, "ruim", ClassificarEficiencia(69))
	assert.Equal(t, "ruim", ClassificarEficiencia(50))
	assert.Equal(t, "ruim", ClassificarEficiencia(0))
}
