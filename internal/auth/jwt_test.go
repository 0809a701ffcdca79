package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGerarEValidarToken(t *testing.T) {
	token, err := GerarToken(42, "debora.supervisor", PerfilSupervisor)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidarToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "debora.supervisor", claims.Username)
	assert.Equal(t, PerfilSupervisor, claims.Perfil)
}

func TestValidarTokenAdulterado(t *testing.T) {
	token, err := GerarToken(1, "admin", PerfilAdministrador)
	require.NoError(t, err)

	_, err = ValidarToken(token + "x")
	assert.Error(t, err)

	_, err = ValidarToken("nem-de-longe-um-jwt")
	assert.Error(t, err)
}

func TestPerfilTemPermissao(t *testing.T) {
	// Administrador carrega todas as capacidades
	assert.True(t, PerfilTemPermissao(PerfilAdministrador, PermGerenciarUsuarios))
	assert.True(t, PerfilTemPermissao(PerfilAdministrador, PermControleCCO))

	assert.True(t, PerfilTemPermissao(PerfilCampo, PermEditarDiario))
	assert.False(t, PerfilTemPermissao(PerfilCampo, PermAprovarDiarios))
	assert.False(t, PerfilTemPermissao(PerfilCampo, PermGerenciarUsuarios))

	assert.True(t, PerfilTemPermissao(PerfilSupervisor, PermAprovarDiarios))
	assert.True(t, PerfilTemPermissao(PerfilCCO, PermVisualizarDashboards))
	assert.False(t, PerfilTemPermissao(PerfilCCO, PermEditarDiario))

	// Perfil desconhecido não recebe permissão alguma
	assert.False(t, PerfilTemPermissao("Visitante", PermVisualizarDiarios))
}
