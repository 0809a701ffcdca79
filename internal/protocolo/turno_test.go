package protocolo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func em(dia string, hora string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", dia+" "+hora)
	if err != nil {
		panic(err)
	}
	return t
}

func TestVenceNoTurnoManha(t *testing.T) {
	agora := em("2025-03-10", "07:00")

	// vence às 13:30 do mesmo dia, dentro da janela M1 (06:00-14:00)
	assert.True(t, VenceNoTurno(em("2025-03-10", "13:30"), "M1", agora))

	// vence no dia seguinte às 01:00, fora da janela
	assert.False(t, VenceNoTurno(em("2025-03-11", "01:00"), "M1", agora))

	// vence exatamente no fim da janela
	assert.True(t, VenceNoTurno(em("2025-03-10", "14:00"), "M1", agora))

	// vence um minuto depois do fim da janela
	assert.False(t, VenceNoTurno(em("2025-03-10", "14:01"), "M1", agora))
}

func TestVenceNoTurnoForaDaJanela(t *testing.T) {
	// são 15:00, o turno M1 já terminou
	agora := em("2025-03-10", "15:00")
	assert.False(t, VenceNoTurno(em("2025-03-10", "15:30"), "M1", agora))

	// mas o T2 está ativo
	assert.True(t, VenceNoTurno(em("2025-03-10", "21:00"), "T2", agora))
}

func TestVenceNoTurnoNoite(t *testing.T) {
	// 23:00: o turno N1 corrente termina às 06:00 do dia seguinte
	noite := em("2025-03-10", "23:00")
	assert.True(t, VenceNoTurno(em("2025-03-11", "05:00"), "N1", noite))
	assert.True(t, VenceNoTurno(em("2025-03-11", "06:00"), "N1", noite))
	assert.False(t, VenceNoTurno(em("2025-03-11", "06:01"), "N1", noite))

	// 02:00 da madrugada: o mesmo turno termina às 06:00 do próprio dia
	madrugada := em("2025-03-11", "02:00")
	assert.True(t, VenceNoTurno(em("2025-03-11", "05:59"), "N1", madrugada))
	assert.False(t, VenceNoTurno(em("2025-03-11", "08:00"), "N1", madrugada))

	// 12:00: fora da janela noturna
	assert.False(t, VenceNoTurno(em("2025-03-11", "23:30"), "N1", em("2025-03-11", "12:00")))
}

func TestVenceNoTurnoAdministrativo(t *testing.T) {
	agora := em("2025-03-10", "10:00")
	assert.True(t, VenceNoTurno(em("2025-03-10", "23:00"), "A", agora))
	assert.False(t, VenceNoTurno(em("2025-03-11", "01:00"), "A", agora))
}

func TestVenceNoTurnoDesconhecido(t *testing.T) {
	// turnos fora da tabela fixa nunca vencem
	agora := em("2025-03-10", "10:00")
	assert.False(t, VenceNoTurno(em("2025-03-10", "10:30"), "X9", agora))
	assert.False(t, VenceNoTurno(em("2025-03-10", "10:30"), "", agora))
}
